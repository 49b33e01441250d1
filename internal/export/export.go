package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"musicreg/internal/dossier"
	"musicreg/pkg/models"
)

type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	YAML Format = "yaml"
)

var Formats = []Format{JSON, CSV, YAML}

// ParseFormat accepts a format name or a file extension ("yml" is YAML).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, csv or yaml)", s)
}

// CSVHeader is the column order of CSV exports.
var CSVHeader = []string{
	"id", "title", "genre", "creation_date", "page_count", "authors", "tax_ids",
	"contracts", "progress", "pending", "created_at", "updated_at",
}

// Write encodes regs to w in the given format.
func Write(w io.Writer, format Format, regs []models.Registration) error {
	if regs == nil {
		regs = []models.Registration{}
	}
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(regs)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(regs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case CSV:
		return writeCSV(w, regs)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteFile writes regs to path, creating parent directories.
func WriteFile(path string, format Format, regs []models.Registration) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, format, regs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(w io.Writer, regs []models.Registration) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range regs {
		if err := cw.Write(csvRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(r models.Registration) []string {
	var names, taxIDs []string
	for _, a := range r.Authors {
		names = append(names, a.Name)
		taxIDs = append(taxIDs, a.TaxID)
	}
	pages := ""
	if r.PageCount != nil {
		pages = strconv.Itoa(*r.PageCount)
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Title,
		r.Genre,
		r.CreationDate.String(),
		pages,
		strings.Join(names, "; "),
		strings.Join(taxIDs, "; "),
		strconv.Itoa(len(r.Contracts)),
		strconv.Itoa(dossier.Progress(r.Checklist)),
		strings.Join(r.Checklist.Pending(), "; "),
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
