package models

import "time"

// FileRef is an in-memory handle to a file picked by the user. Only its
// metadata is known to the engine; bytes are never read or persisted.
type FileRef struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// Contract is one contract or supporting document attached to the dossier.
type Contract struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
	File       *FileRef  `json:"-"`
}

// Ref drops the file handle.
func (c Contract) Ref() ContractRef {
	return ContractRef{ID: c.ID, Name: c.Name, Type: c.Type, UploadedAt: c.UploadedAt}
}

// ContractRef is the serializable shape of a contract entry.
type ContractRef struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Type       string    `json:"type" yaml:"type"`
	UploadedAt time.Time `json:"uploaded_at" yaml:"uploaded_at"`
}

// Attachments groups lyrics, audio and contracts of a draft.
type Attachments struct {
	LyricText string
	LyricFile *FileRef
	AudioFile *FileRef
	Contracts []Contract
}
