package dossier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"musicreg/pkg/models"
)

func TestProjectEmptyDraft(t *testing.T) {
	d := NewDraft()
	p := Project(d, d.Checklist())

	require.Equal(t, NotProvided, p.Title)
	require.Equal(t, models.DefaultGenre, p.Genre)
	require.Equal(t, NotProvided, p.CreationDate)
	require.Equal(t, NotProvided, p.PageCount)
	require.Equal(t, NotProvided, p.Lyrics)
	require.Equal(t, NotProvided, p.Audio)
	require.Empty(t, p.Authors)
	require.Zero(t, p.ContractCount)
	require.Equal(t, "2/8", p.Completed)
	require.Equal(t, 25, p.Progress)
	require.Len(t, p.Pending, 6)
}

func TestProjectCompleteDraft(t *testing.T) {
	d := completeDraft(t)
	d.SetCreationDate(models.NewDate(2023, 12, 24))
	n := 2
	_, err := d.SetPageCount(&n)
	require.NoError(t, err)

	p := Project(d, d.Checklist())
	require.Equal(t, "Minha Música", p.Title)
	require.Equal(t, "24/12/2023", p.CreationDate)
	require.Equal(t, "2", p.PageCount)
	require.Equal(t, "la la la", p.Lyrics)
	require.Equal(t, "demo.mp3", p.Audio)
	require.Len(t, p.Authors, 1)
	require.Equal(t, 100, p.Progress)
	require.Equal(t, "8/8", p.Completed)
	require.Empty(t, p.Pending)
}

func TestProjectSkipsUnnamedAuthors(t *testing.T) {
	d := NewDraft()
	d.AddAuthor()
	_, err := d.UpdateAuthorField(1, models.FieldName, "Bia")
	require.NoError(t, err)

	p := Project(d, d.Checklist())
	require.Len(t, p.Authors, 1)
	require.Equal(t, "Bia", p.Authors[0].Name)
	require.Equal(t, 2, d.AuthorCount())
}

func TestProjectLyricFileFallback(t *testing.T) {
	d := NewDraft()
	d.SetLyricFile(&models.FileRef{Name: "letra.pdf"})
	require.Equal(t, "letra.pdf", Project(d, d.Checklist()).Lyrics)

	d.SetLyricText("verso")
	require.Equal(t, "verso", Project(d, d.Checklist()).Lyrics)
}

func TestProjectDoesNotMutateDraft(t *testing.T) {
	d := completeDraft(t)
	before := d.Dossier()
	p := Project(d, d.Checklist())
	p.Authors[0].Name = "changed"
	require.Equal(t, before, d.Dossier())
}
