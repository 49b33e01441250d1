package dossier

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"musicreg/pkg/models"
)

var (
	ErrAuthorIndex   = errors.New("author index out of range")
	ErrUnknownField  = errors.New("unknown author field")
	ErrUnknownGenre  = errors.New("unknown genre")
	ErrNegativePages = errors.New("page count must be >= 0")
)

// Draft is the in-progress registration of one work. It is owned by a single
// workflow session. Every mutator re-derives the checklist before returning it.
type Draft struct {
	work           models.Work
	authors        []models.Author
	attachments    models.Attachments
	checklist      models.Checklist
	registrationID atomic.Int64

	now   func() time.Time
	newID func() string
}

type Option func(*Draft)

// WithClock overrides the time source used for contract timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Draft) { d.now = now }
}

// WithIDFunc overrides the contract identifier generator.
func WithIDFunc(newID func() string) Option {
	return func(d *Draft) { d.newID = newID }
}

// NewDraft returns an empty draft with one blank author.
func NewDraft(opts ...Option) *Draft {
	d := &Draft{
		work:    models.NewWork(),
		authors: []models.Author{models.NewAuthor()},
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.derive()
	return d
}

func (d *Draft) derive() models.Checklist {
	d.checklist = Derive(d)
	return d.checklist
}

// Work returns a copy of the work record.
func (d *Draft) Work() models.Work {
	w := d.work
	if w.PageCount != nil {
		n := *w.PageCount
		w.PageCount = &n
	}
	return w
}

// Authors returns a copy of the author collection.
func (d *Draft) Authors() []models.Author {
	return slices.Clone(d.authors)
}

func (d *Draft) AuthorCount() int { return len(d.authors) }

// Attachments returns a copy of the attachment set.
func (d *Draft) Attachments() models.Attachments {
	a := d.attachments
	a.Contracts = slices.Clone(d.attachments.Contracts)
	return a
}

// Checklist is the last derived checklist.
func (d *Draft) Checklist() models.Checklist { return d.checklist }

// RegistrationID is the id assigned by the registration service, 0 before
// the first successful save.
// It is the only draft state written by a background save.
func (d *Draft) RegistrationID() int64 { return d.registrationID.Load() }

func (d *Draft) setRegistrationID(id int64) { d.registrationID.Store(id) }

func (d *Draft) SetTitle(title string) models.Checklist {
	d.work.Title = title
	return d.derive()
}

// SetGenre accepts catalog genres only, matched case-insensitively.
func (d *Draft) SetGenre(genre string) (models.Checklist, error) {
	g := models.NormalizeGenre(genre)
	if g == "" {
		return d.checklist, fmt.Errorf("%w: %q", ErrUnknownGenre, genre)
	}
	d.work.Genre = g
	return d.derive(), nil
}

func (d *Draft) SetCreationDate(date models.Date) models.Checklist {
	d.work.CreationDate = date
	return d.derive()
}

// SetPageCount sets or, with nil, clears the page count.
func (d *Draft) SetPageCount(n *int) (models.Checklist, error) {
	if n == nil {
		d.work.PageCount = nil
		return d.derive(), nil
	}
	if *n < 0 {
		return d.checklist, ErrNegativePages
	}
	v := *n
	d.work.PageCount = &v
	return d.derive(), nil
}

// AddAuthor appends a blank author with the form defaults.
func (d *Draft) AddAuthor() models.Checklist {
	d.authors = append(d.authors, models.NewAuthor())
	return d.derive()
}

// RemoveAuthor drops the author at index i. The collection never shrinks
// below one author: removing the sole author, or an index out of range, is
// a no-op reported by the boolean.
func (d *Draft) RemoveAuthor(i int) (models.Checklist, bool) {
	if len(d.authors) <= 1 || i < 0 || i >= len(d.authors) {
		return d.checklist, false
	}
	d.authors = slices.Delete(d.authors, i, i+1)
	return d.derive(), true
}

// UpdateAuthorField replaces one field of the author at index i.
func (d *Draft) UpdateAuthorField(i int, field models.AuthorField, value string) (models.Checklist, error) {
	if i < 0 || i >= len(d.authors) {
		return d.checklist, fmt.Errorf("%w: %d (have %d)", ErrAuthorIndex, i, len(d.authors))
	}
	if !slices.Contains(models.AuthorFields, field) {
		return d.checklist, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	a := d.authors[i]
	if err := a.Set(field, value); err != nil {
		return d.checklist, err
	}
	d.authors[i] = a
	return d.derive(), nil
}

func (d *Draft) SetLyricText(text string) models.Checklist {
	d.attachments.LyricText = text
	return d.derive()
}

// SetLyricFile sets the lyric file handle; nil clears it.
func (d *Draft) SetLyricFile(f *models.FileRef) models.Checklist {
	d.attachments.LyricFile = cloneRef(f)
	return d.derive()
}

// SetAudioFile replaces any previous audio handle; nil clears it.
func (d *Draft) SetAudioFile(f *models.FileRef) models.Checklist {
	d.attachments.AudioFile = cloneRef(f)
	return d.derive()
}

// AddContract appends a contract entry with a fresh id and the current time.
// A blank display name falls back to the file name.
func (d *Draft) AddContract(f *models.FileRef, name string) (models.Contract, models.Checklist) {
	name = strings.TrimSpace(name)
	if name == "" && f != nil {
		name = f.Name
	}
	c := models.Contract{
		ID:         d.newID(),
		Name:       name,
		Type:       models.ContractType,
		UploadedAt: d.now(),
		File:       cloneRef(f),
	}
	d.attachments.Contracts = append(d.attachments.Contracts, c)
	return c, d.derive()
}

// RemoveContract deletes the contract with the given id. Unknown ids are a no-op.
func (d *Draft) RemoveContract(id string) (models.Checklist, bool) {
	idx := slices.IndexFunc(d.attachments.Contracts, func(c models.Contract) bool { return c.ID == id })
	if idx < 0 {
		return d.checklist, false
	}
	d.attachments.Contracts = slices.Delete(d.attachments.Contracts, idx, idx+1)
	return d.derive(), true
}

func cloneRef(f *models.FileRef) *models.FileRef {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
