package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"musicreg/internal/dossier"
	"musicreg/pkg/models"
)

var ErrUsage = errors.New("usage")

// FileOpener turns a path typed by the user into an in-memory file handle.
type FileOpener func(path string) (*models.FileRef, error)

// StatFile describes a local file without reading it.
func StatFile(path string) (*models.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &models.FileRef{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

// Shell runs the line-oriented draft workflow against one session.
type Shell struct {
	session  *dossier.Session
	out      io.Writer
	openFile FileOpener
	fancy    bool
}

type Option func(*Shell)

func WithFileOpener(fn FileOpener) Option {
	return func(s *Shell) { s.openFile = fn }
}

// WithFancyTables enables rounded table borders.
func WithFancyTables(on bool) Option {
	return func(s *Shell) { s.fancy = on }
}

func New(session *dossier.Session, out io.Writer, opts ...Option) *Shell {
	sh := &Shell{session: session, out: out, openFile: StatFile}
	for _, opt := range opts {
		opt(sh)
	}
	return sh
}

// Run reads commands from in until quit or end of input. Command errors are
// printed and do not stop the loop.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	sh.printf("Registro de obra musical. Digite 'help' para ver os comandos.\n")
	sh.printProgress()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		sh.printf("> ")
		if !sc.Scan() {
			sh.printf("\n")
			return sc.Err()
		}
		quit, err := sh.Exec(ctx, sc.Text())
		if err != nil {
			sh.printf("erro: %v\n", err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Exec runs a single command line.
func (sh *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	d := sh.session.Draft()

	switch strings.ToLower(cmd) {
	case "help", "?":
		sh.help()
		return false, nil
	case "quit", "exit":
		return true, nil
	case "title":
		sh.changed(d.SetTitle(rest))
	case "genre":
		if rest == "" {
			sh.listCatalog("Gênero", models.Genres)
			return false, nil
		}
		c, err := d.SetGenre(rest)
		if err != nil {
			return false, err
		}
		sh.changed(c)
	case "date":
		date, err := parseDate(rest)
		if err != nil {
			return false, err
		}
		sh.changed(d.SetCreationDate(date))
	case "pages":
		var n *int
		if rest != "" {
			v, err := strconv.Atoi(rest)
			if err != nil {
				return false, fmt.Errorf("%w: pages <n>", ErrUsage)
			}
			n = &v
		}
		c, err := d.SetPageCount(n)
		if err != nil {
			return false, err
		}
		sh.changed(c)
	case "author":
		return false, sh.author(rest)
	case "authors":
		sh.listAuthors(d.Authors())
	case "lyrics":
		sh.changed(d.SetLyricText(rest))
	case "lyrics-file":
		f, err := sh.fileArg(rest)
		if err != nil {
			return false, err
		}
		sh.changed(d.SetLyricFile(f))
	case "audio":
		f, err := sh.fileArg(rest)
		if err != nil {
			return false, err
		}
		sh.changed(d.SetAudioFile(f))
	case "contract":
		return false, sh.contract(rest)
	case "contracts":
		sh.listContracts(d.Attachments().Contracts)
	case "checklist":
		sh.checklist(d.Checklist())
	case "preview":
		sh.preview(dossier.Project(d, d.Checklist()))
	case "save":
		return false, sh.save(ctx)
	default:
		return false, fmt.Errorf("comando desconhecido %q (digite 'help')", cmd)
	}
	return false, nil
}

func (sh *Shell) author(args string) error {
	d := sh.session.Draft()
	sub, rest, _ := strings.Cut(args, " ")
	rest = strings.TrimSpace(rest)

	switch sub {
	case "add":
		sh.changed(d.AddAuthor())
		sh.printf("autor %d adicionado\n", d.AuthorCount())
		return nil
	case "rm":
		i, err := authorIndex(rest)
		if err != nil {
			return err
		}
		if i < 0 || i >= d.AuthorCount() {
			return fmt.Errorf("%w: autor %d não existe (há %d)", dossier.ErrAuthorIndex, i+1, d.AuthorCount())
		}
		c, ok := d.RemoveAuthor(i)
		if !ok {
			sh.printf("nada removido: a obra precisa de pelo menos um autor\n")
			return nil
		}
		sh.changed(c)
		return nil
	case "set":
		idx, after, _ := strings.Cut(rest, " ")
		name, value, _ := strings.Cut(strings.TrimSpace(after), " ")
		i, err := authorIndex(idx)
		if err != nil {
			return err
		}
		field, ok := models.ParseAuthorField(name)
		if !ok {
			return fmt.Errorf("%w: %q", dossier.ErrUnknownField, name)
		}
		c, err := d.UpdateAuthorField(i, field, strings.TrimSpace(value))
		if err != nil {
			return err
		}
		sh.changed(c)
		return nil
	}
	return fmt.Errorf("%w: author add | author rm <n> | author set <n> <campo> <valor>", ErrUsage)
}

// authorIndex converts the 1-based number shown to users.
func authorIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: author number expected, got %q", ErrUsage, s)
	}
	return n - 1, nil
}

func (sh *Shell) contract(args string) error {
	d := sh.session.Draft()
	sub, rest, _ := strings.Cut(args, " ")
	rest = strings.TrimSpace(rest)

	switch sub {
	case "add":
		path, name, _ := strings.Cut(rest, " ")
		if path == "" {
			break
		}
		f, err := sh.openFile(path)
		if err != nil {
			return err
		}
		contract, c := d.AddContract(f, name)
		sh.printf("contrato %s adicionado (%s)\n", contract.ID, contract.Name)
		sh.changed(c)
		return nil
	case "rm":
		if rest == "" {
			break
		}
		c, ok := d.RemoveContract(rest)
		if !ok {
			sh.printf("contrato %q não encontrado\n", rest)
			return nil
		}
		sh.changed(c)
		return nil
	}
	return fmt.Errorf("%w: contract add <arquivo> [nome] | contract rm <id>", ErrUsage)
}

// fileArg opens path, or clears the attachment for "" and "none".
func (sh *Shell) fileArg(path string) (*models.FileRef, error) {
	if path == "" || strings.EqualFold(path, "none") {
		return nil, nil
	}
	return sh.openFile(path)
}

func (sh *Shell) save(ctx context.Context) error {
	sh.printf("salvando...\n")
	res := <-sh.session.SaveAsync(ctx)
	if res.Err != nil {
		if errors.Is(res.Err, dossier.ErrSaveInProgress) {
			return res.Err
		}
		return errors.New(sh.session.LastError())
	}
	sh.printf("registro %d salvo\n", res.RegistrationID)
	return nil
}

func parseDate(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, nil
	}
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return models.DateOf(t), nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: date AAAA-MM-DD ou DD/MM/AAAA", ErrUsage)
	}
	return d, nil
}

func (sh *Shell) changed(c models.Checklist) {
	sh.printf("progresso: %d%% (%d/%d)\n", dossier.Progress(c), c.Completed(), models.ChecklistSize)
}

func (sh *Shell) printProgress() {
	sh.changed(sh.session.Draft().Checklist())
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}
