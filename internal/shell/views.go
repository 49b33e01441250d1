package shell

import (
	"fmt"
	"strconv"
	"strings"

	"musicreg/internal/dossier"
	"musicreg/pkg/models"
)

var commands = [][]string{
	{"title <texto>", "título da obra"},
	{"genre [nome]", "define o gênero; sem argumento lista o catálogo"},
	{"date [AAAA-MM-DD]", "data de criação; vazio limpa"},
	{"pages [n]", "número de páginas; vazio limpa"},
	{"author add", "adiciona um autor"},
	{"author rm <n>", "remove o autor n"},
	{"author set <n> <campo> <valor>", "altera um campo do autor n"},
	{"authors", "lista os autores"},
	{"lyrics <texto>", "letra da música"},
	{"lyrics-file <arquivo|none>", "arquivo da letra"},
	{"audio <arquivo|none>", "arquivo de áudio"},
	{"contract add <arquivo> [nome]", "anexa um contrato"},
	{"contract rm <id>", "remove um contrato"},
	{"contracts", "lista os contratos"},
	{"checklist", "itens de conformidade"},
	{"preview", "resumo do registro"},
	{"save", "envia o registro"},
	{"quit", "sai"},
}

func (sh *Shell) help() {
	sh.println(RenderTable([]string{"Comando", "Descrição"}, commands, nil, sh.fancy))
	fields := make([]string, 0, len(models.AuthorFields))
	for _, f := range models.AuthorFields {
		fields = append(fields, string(f))
	}
	sh.printf("campos de autor: %s\n", strings.Join(fields, ", "))
}

func (sh *Shell) listCatalog(title string, values []string) {
	rows := make([][]string, 0, len(values))
	for i, v := range values {
		rows = append(rows, []string{strconv.Itoa(i + 1), v})
	}
	sh.println(RenderTable([]string{"#", title}, rows, []columnAlignment{alignRight, alignLeft}, sh.fancy))
}

func (sh *Shell) listAuthors(authors []models.Author) {
	rows := make([][]string, 0, len(authors))
	for i, a := range authors {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), orDash(a.Name), orDash(a.TaxID), orDash(a.Pseudonym),
			a.Role, orDash(a.State), signed(a.Signature),
		})
	}
	sh.println(RenderTable(
		[]string{"#", "Nome", "CPF", "Pseudônimo", "Função", "UF", "Assinatura"},
		rows, []columnAlignment{alignRight}, sh.fancy))
}

func (sh *Shell) listContracts(contracts []models.Contract) {
	if len(contracts) == 0 {
		sh.printf("nenhum contrato anexado\n")
		return
	}
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, []string{c.ID, c.Name, c.Type, c.UploadedAt.Local().Format("02/01/2006 15:04")})
	}
	sh.println(RenderTable([]string{"ID", "Nome", "Tipo", "Anexado em"}, rows, nil, sh.fancy))
}

func (sh *Shell) checklist(c models.Checklist) {
	items := c.Items()
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		mark := "pendente"
		if it.Done {
			mark = "ok"
		}
		rows = append(rows, []string{it.Label, mark})
	}
	sh.println(RenderTable([]string{"Item", "Situação"}, rows, nil, sh.fancy))
	sh.changed(c)
}

func (sh *Shell) preview(p dossier.Preview) {
	rows := [][]string{
		{"Título", p.Title},
		{"Gênero", p.Genre},
		{"Data de criação", p.CreationDate},
		{"Páginas", p.PageCount},
		{"Letra", truncate(p.Lyrics, 60)},
		{"Áudio", p.Audio},
		{"Contratos", strconv.Itoa(p.ContractCount)},
		{"Progresso", fmt.Sprintf("%d%% (%s)", p.Progress, p.Completed)},
	}
	sh.println(RenderTable([]string{"Campo", "Valor"}, rows, nil, sh.fancy))

	if len(p.Authors) == 0 {
		sh.printf("Autores: %s\n", dossier.NotProvided)
	} else {
		sh.listAuthors(p.Authors)
	}
	if len(p.Pending) > 0 {
		sh.printf("Pendências:\n")
		for _, label := range p.Pending {
			sh.printf("  - %s\n", label)
		}
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func signed(s string) string {
	if strings.TrimSpace(s) == "" {
		return "não"
	}
	return "sim"
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
