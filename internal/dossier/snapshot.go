package dossier

import (
	"slices"
	"strings"

	"musicreg/pkg/models"
)

// Dossier reduces the draft to its serializable shape: lyric text is kept
// literally, contracts lose their file handles, lyric and audio files are dropped.
func (d *Draft) Dossier() models.Dossier {
	w := d.Work()
	refs := make([]models.ContractRef, 0, len(d.attachments.Contracts))
	for _, c := range d.attachments.Contracts {
		refs = append(refs, c.Ref())
	}
	return models.Dossier{
		Title:          w.Title,
		Genre:          w.Genre,
		CreationDate:   w.CreationDate,
		PageCount:      w.PageCount,
		Authors:        d.Authors(),
		Lyrics:         d.attachments.LyricText,
		Contracts:      refs,
		Checklist:      d.checklist,
		RegistrationID: d.RegistrationID(),
	}
}

// FromDossier rebuilds a draft from its reduced shape. File handles are not
// restored. The stored checklist is carried as the last derived one until
// the next mutation recomputes it.
func FromDossier(in models.Dossier, opts ...Option) *Draft {
	d := NewDraft(opts...)

	d.work.Title = in.Title
	if g := models.NormalizeGenre(in.Genre); g != "" {
		d.work.Genre = g
	}
	d.work.CreationDate = in.CreationDate
	if in.PageCount != nil && *in.PageCount >= 0 {
		n := *in.PageCount
		d.work.PageCount = &n
	}

	if len(in.Authors) > 0 {
		d.authors = slices.Clone(in.Authors)
	}

	d.attachments.LyricText = in.Lyrics
	for _, ref := range in.Contracts {
		if strings.TrimSpace(ref.ID) == "" {
			continue
		}
		typ := ref.Type
		if typ == "" {
			typ = models.ContractType
		}
		d.attachments.Contracts = append(d.attachments.Contracts, models.Contract{
			ID:         ref.ID,
			Name:       ref.Name,
			Type:       typ,
			UploadedAt: ref.UploadedAt,
		})
	}

	d.setRegistrationID(in.RegistrationID)
	d.checklist = in.Checklist
	return d
}
