package models

// Checklist is the eight-item legal compliance checklist. It is always
// derived from a draft and never edited directly.
type Checklist struct {
	TitlePresent            bool `json:"title_present" yaml:"title_present"`
	LyricsPresent           bool `json:"lyrics_present" yaml:"lyrics_present"`
	AudioPresent            bool `json:"audio_present" yaml:"audio_present"`
	AuthorsIdentified       bool `json:"authors_identified" yaml:"authors_identified"`
	AuthorshipProof         bool `json:"authorship_proof" yaml:"authorship_proof"`
	CoauthorshipDeclaration bool `json:"coauthorship_declaration" yaml:"coauthorship_declaration"`
	ContractsData           bool `json:"contracts_data" yaml:"contracts_data"`
	SummaryComplete         bool `json:"summary_complete" yaml:"summary_complete"`
}

// ChecklistSize is the number of flags in a Checklist.
const ChecklistSize = 8

// ChecklistItem is one labelled flag.
type ChecklistItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Items returns the flags in display order with their form labels.
func (c Checklist) Items() []ChecklistItem {
	return []ChecklistItem{
		{Key: "title_present", Label: "Título da música", Done: c.TitlePresent},
		{Key: "lyrics_present", Label: "Letra da música", Done: c.LyricsPresent},
		{Key: "audio_present", Label: "Arquivo de áudio", Done: c.AudioPresent},
		{Key: "authors_identified", Label: "Identificação dos autores", Done: c.AuthorsIdentified},
		{Key: "authorship_proof", Label: "Comprovante da autoria", Done: c.AuthorshipProof},
		{Key: "coauthorship_declaration", Label: "Declaração de coautoria", Done: c.CoauthorshipDeclaration},
		{Key: "contracts_data", Label: "Dados de contratos", Done: c.ContractsData},
		{Key: "summary_complete", Label: "Resumo e pendências", Done: c.SummaryComplete},
	}
}

// Completed counts the flags that are set.
func (c Checklist) Completed() int {
	n := 0
	for _, it := range c.Items() {
		if it.Done {
			n++
		}
	}
	return n
}

// Pending returns the labels of unset flags in display order.
func (c Checklist) Pending() []string {
	var out []string
	for _, it := range c.Items() {
		if !it.Done {
			out = append(out, it.Label)
		}
	}
	return out
}
