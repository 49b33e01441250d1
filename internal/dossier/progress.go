package dossier

import (
	"math"

	"musicreg/pkg/models"
)

// Progress returns the share of checklist flags that are set, in percent,
// rounded half away from zero.
//
// SummaryComplete only flips together with the last of the other seven
// flags, so completing the final requirement moves progress by two flags
// at once (75 -> 100). 100 is reachable only with every requirement met.
func Progress(c models.Checklist) int {
	return int(math.Round(100 * float64(c.Completed()) / models.ChecklistSize))
}
