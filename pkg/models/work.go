package models

// Work holds the attributes of the musical work being registered.
type Work struct {
	Title        string `json:"title"`
	Genre        string `json:"genre"`
	CreationDate Date   `json:"creation_date"`
	PageCount    *int   `json:"page_count,omitempty"`
}

// NewWork returns a blank work with the default genre.
func NewWork() Work {
	return Work{Genre: DefaultGenre}
}
