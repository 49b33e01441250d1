package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"musicreg/pkg/models"
)

func sample() []models.Registration {
	pages := 3
	a := models.NewAuthor()
	a.Name = "Ana Silva"
	a.TaxID = "123"
	b := models.NewAuthor()
	b.Name = "Bruno"
	b.TaxID = "456"
	return []models.Registration{{
		ID:           7,
		UserID:       "u1",
		Title:        "Canção, com vírgula",
		Genre:        models.DefaultGenre,
		CreationDate: models.NewDate(2024, time.February, 29),
		PageCount:    &pages,
		Authors:      []models.Author{a, b},
		Contracts:    []models.ContractRef{{ID: "c1", Name: "Cessão", Type: models.ContractType}},
		Checklist:    models.Checklist{TitlePresent: true, LyricsPresent: true, CoauthorshipDeclaration: true, ContractsData: true},
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": JSON, "CSV": CSV, ".yml": YAML, "yaml": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, CSVHeader, rows[0])

	row := rows[1]
	require.Equal(t, "7", row[0])
	require.Equal(t, "Canção, com vírgula", row[1])
	require.Equal(t, "2024-02-29", row[3])
	require.Equal(t, "3", row[4])
	require.Equal(t, "Ana Silva; Bruno", row[5])
	require.Equal(t, "1", row[7])
	require.Equal(t, "50", row[8])
	require.Contains(t, row[9], "Arquivo de áudio")
	require.Equal(t, "2024-03-01T10:00:00Z", row[10])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, sample()))

	var got []models.Registration
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, sample(), got)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, sample()))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Canção, com vírgula", got[0]["title"])
	require.Equal(t, "2024-02-29", got[0]["creation_date"])
	authors := got[0]["authors"].([]any)
	require.Len(t, authors, 2)
	require.Equal(t, "Bruno", authors[1].(map[string]any)["name"])
}

func TestWriteEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, nil))
	require.JSONEq(t, "[]", buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "regs.csv")
	require.NoError(t, WriteFile(path, CSV, sample()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Canção")
}
