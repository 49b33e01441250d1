package models

// Dossier is the reduced, serializable form of a draft. It is the body sent
// to the registration service and the entry kept in the local recovery
// cache. File handles (lyric file, audio, contract files) never appear here.
type Dossier struct {
	Title          string        `json:"title" yaml:"title"`
	Genre          string        `json:"genre" yaml:"genre"`
	CreationDate   Date          `json:"creation_date" yaml:"creation_date"`
	PageCount      *int          `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	Authors        []Author      `json:"authors" yaml:"authors"`
	Lyrics         string        `json:"lyrics" yaml:"lyrics"`
	Contracts      []ContractRef `json:"contracts" yaml:"contracts"`
	Checklist      Checklist     `json:"checklist" yaml:"checklist"`
	RegistrationID int64         `json:"registration_id,omitempty" yaml:"registration_id,omitempty"`
}
