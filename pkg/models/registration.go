package models

import "time"

// Registration is a dossier stored by the registration service.
type Registration struct {
	ID           int64         `json:"id" yaml:"id"`
	UserID       string        `json:"user_id" yaml:"user_id"`
	Title        string        `json:"title" yaml:"title"`
	Genre        string        `json:"genre" yaml:"genre"`
	CreationDate Date          `json:"creation_date" yaml:"creation_date"`
	PageCount    *int          `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	Authors      []Author      `json:"authors" yaml:"authors"`
	Lyrics       string        `json:"lyrics,omitempty" yaml:"lyrics,omitempty"`
	Contracts    []ContractRef `json:"contracts" yaml:"contracts"`
	Checklist    Checklist     `json:"checklist" yaml:"checklist"`
	CreatedAt    time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" yaml:"updated_at"`
}

// Dossier returns the registration in transport shape.
func (r Registration) Dossier() Dossier {
	return Dossier{
		Title:          r.Title,
		Genre:          r.Genre,
		CreationDate:   r.CreationDate,
		PageCount:      r.PageCount,
		Authors:        r.Authors,
		Lyrics:         r.Lyrics,
		Contracts:      r.Contracts,
		Checklist:      r.Checklist,
		RegistrationID: r.ID,
	}
}
