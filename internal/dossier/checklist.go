package dossier

import (
	"strings"

	"musicreg/pkg/models"
)

// requirements are the seven checklist items that depend only on the draft.
type requirements struct {
	title, lyrics, audio, identified, proof, coauthorship, contracts bool
}

func (r requirements) all() bool {
	return r.title && r.lyrics && r.audio && r.identified && r.proof && r.coauthorship && r.contracts
}

// Derive computes the checklist of d. It reads the draft only.
//
// The summary flag is computed last, from the seven requirements evaluated
// in this call and never from a previously stored checklist.
func Derive(d *Draft) models.Checklist {
	r := evaluate(d.work, d.authors, d.attachments)
	return models.Checklist{
		TitlePresent:            r.title,
		LyricsPresent:           r.lyrics,
		AudioPresent:            r.audio,
		AuthorsIdentified:       r.identified,
		AuthorshipProof:         r.proof,
		CoauthorshipDeclaration: r.coauthorship,
		ContractsData:           r.contracts,
		SummaryComplete:         r.all(),
	}
}

func evaluate(w models.Work, authors []models.Author, att models.Attachments) requirements {
	authorCount := len(authors)
	contractCount := len(att.Contracts)

	identified, proof := true, true
	for _, a := range authors {
		if blank(a.Name) || blank(a.TaxID) {
			identified = false
		}
		if blank(a.Signature) {
			proof = false
		}
	}

	return requirements{
		title:        !blank(w.Title),
		lyrics:       !blank(att.LyricText) || att.LyricFile != nil,
		audio:        att.AudioFile != nil,
		identified:   identified,
		proof:        proof,
		coauthorship: authorCount <= 1 || contractCount > 0,
		contracts:    contractCount > 0 || authorCount == 1,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
