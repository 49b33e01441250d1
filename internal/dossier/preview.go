package dossier

import (
	"fmt"
	"strings"

	"musicreg/pkg/models"
)

// NotProvided is shown in place of any missing value.
const NotProvided = "Não informado"

// Preview is a read-only summary of a draft for display.
type Preview struct {
	Title         string          `json:"title"`
	Genre         string          `json:"genre"`
	CreationDate  string          `json:"creation_date"`
	PageCount     string          `json:"page_count"`
	Authors       []models.Author `json:"authors"`
	Lyrics        string          `json:"lyrics"`
	Audio         string          `json:"audio"`
	ContractCount int             `json:"contract_count"`
	Progress      int             `json:"progress"`
	Completed     string          `json:"completed"`
	Pending       []string        `json:"pending"`
}

// Project builds the preview of d for the given checklist. Authors without a
// name are left out of the preview only. d is not modified.
func Project(d *Draft, c models.Checklist) Preview {
	w := d.Work()
	att := d.Attachments()

	p := Preview{
		Title:         orNotProvided(w.Title),
		Genre:         w.Genre,
		CreationDate:  orNotProvided(w.CreationDate.Display()),
		PageCount:     NotProvided,
		Authors:       []models.Author{},
		Lyrics:        NotProvided,
		Audio:         NotProvided,
		ContractCount: len(att.Contracts),
		Progress:      Progress(c),
		Completed:     fmt.Sprintf("%d/%d", c.Completed(), models.ChecklistSize),
		Pending:       c.Pending(),
	}
	if w.PageCount != nil {
		p.PageCount = fmt.Sprintf("%d", *w.PageCount)
	}

	for _, a := range d.Authors() {
		if !blank(a.Name) {
			p.Authors = append(p.Authors, a)
		}
	}

	switch {
	case !blank(att.LyricText):
		p.Lyrics = att.LyricText
	case att.LyricFile != nil:
		p.Lyrics = att.LyricFile.Name
	}
	if att.AudioFile != nil {
		p.Audio = att.AudioFile.Name
	}
	return p
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotProvided
	}
	return s
}
