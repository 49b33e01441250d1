package registration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"musicreg/pkg/models"
)

var (
	ErrTitleRequired  = errors.New("title required")
	ErrGenreInvalid   = errors.New("genre must be a catalog entry")
	ErrAuthorRequired = errors.New("at least one author required")
	ErrPageCount      = errors.New("page_count must be >= 0")
	ErrAuthorInvalid  = errors.New("invalid author")
)

// Normalize validates an incoming dossier and fills in server-side defaults:
// catalog spelling of genre, role and state, and a creation date of today.
func Normalize(d models.Dossier, now time.Time) (models.Dossier, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return d, ErrTitleRequired
	}

	if strings.TrimSpace(d.Genre) == "" {
		d.Genre = models.DefaultGenre
	}
	genre := models.NormalizeGenre(d.Genre)
	if genre == "" {
		return d, fmt.Errorf("%w: %q", ErrGenreInvalid, d.Genre)
	}
	d.Genre = genre

	if d.PageCount != nil && *d.PageCount < 0 {
		return d, ErrPageCount
	}

	if len(d.Authors) == 0 {
		return d, ErrAuthorRequired
	}
	authors := make([]models.Author, 0, len(d.Authors))
	for i, a := range d.Authors {
		if a.Role != "" {
			if a.Role = models.NormalizeRole(a.Role); a.Role == "" {
				return d, fmt.Errorf("%w %d: unknown role %q", ErrAuthorInvalid, i, d.Authors[i].Role)
			}
		}
		if a.State != "" {
			if a.State = models.NormalizeState(a.State); a.State == "" {
				return d, fmt.Errorf("%w %d: unknown state %q", ErrAuthorInvalid, i, d.Authors[i].State)
			}
		}
		authors = append(authors, a)
	}
	d.Authors = authors

	if d.CreationDate.IsZero() {
		d.CreationDate = models.DateOf(now)
	}
	if d.Contracts == nil {
		d.Contracts = []models.ContractRef{}
	}
	return d, nil
}
