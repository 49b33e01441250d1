package dossier

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"musicreg/pkg/models"
)

func fixedOptions() []Option {
	n := 0
	return []Option{
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }),
		WithIDFunc(func() string { n++; return fmt.Sprintf("c-%d", n) }),
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()
	require.Equal(t, 1, d.AuthorCount())
	require.Equal(t, models.DefaultGenre, d.Work().Genre)
	require.Equal(t, models.DefaultRole, d.Authors()[0].Role)
	require.Equal(t, models.DefaultNationality, d.Authors()[0].Nationality)
	require.Zero(t, d.RegistrationID())
}

func TestSetGenre(t *testing.T) {
	d := NewDraft()
	_, err := d.SetGenre("poema")
	require.NoError(t, err)
	require.Equal(t, "Poema", d.Work().Genre)

	_, err = d.SetGenre("polka-metal")
	require.ErrorIs(t, err, ErrUnknownGenre)
	require.Equal(t, "Poema", d.Work().Genre)
}

func TestSetPageCount(t *testing.T) {
	d := NewDraft()
	n := 3
	_, err := d.SetPageCount(&n)
	require.NoError(t, err)
	n = 9
	require.Equal(t, 3, *d.Work().PageCount)

	neg := -1
	_, err = d.SetPageCount(&neg)
	require.ErrorIs(t, err, ErrNegativePages)
	require.Equal(t, 3, *d.Work().PageCount)

	_, err = d.SetPageCount(nil)
	require.NoError(t, err)
	require.Nil(t, d.Work().PageCount)
}

func TestRemoveSoleAuthorIsNoop(t *testing.T) {
	d := NewDraft()
	_, err := d.UpdateAuthorField(0, models.FieldName, "Ana")
	require.NoError(t, err)

	_, ok := d.RemoveAuthor(0)
	require.False(t, ok)
	require.Equal(t, 1, d.AuthorCount())
	require.Equal(t, "Ana", d.Authors()[0].Name)
}

func TestRemoveAuthorOutOfRange(t *testing.T) {
	d := NewDraft()
	d.AddAuthor()
	_, ok := d.RemoveAuthor(5)
	require.False(t, ok)
	_, ok = d.RemoveAuthor(-1)
	require.False(t, ok)
	require.Equal(t, 2, d.AuthorCount())
}

func TestRemoveAuthorKeepsOrder(t *testing.T) {
	d := NewDraft()
	d.AddAuthor()
	d.AddAuthor()
	for i, name := range []string{"A", "B", "C"} {
		_, err := d.UpdateAuthorField(i, models.FieldName, name)
		require.NoError(t, err)
	}

	_, ok := d.RemoveAuthor(1)
	require.True(t, ok)
	authors := d.Authors()
	require.Len(t, authors, 2)
	require.Equal(t, "A", authors[0].Name)
	require.Equal(t, "C", authors[1].Name)
}

func TestUpdateAuthorFieldErrors(t *testing.T) {
	d := NewDraft()
	before := d.Authors()

	_, err := d.UpdateAuthorField(3, models.FieldName, "x")
	require.ErrorIs(t, err, ErrAuthorIndex)

	_, err = d.UpdateAuthorField(0, models.AuthorField("shoe_size"), "42")
	require.ErrorIs(t, err, ErrUnknownField)

	_, err = d.UpdateAuthorField(0, models.FieldState, "XX")
	require.Error(t, err)

	require.Equal(t, before, d.Authors())
}

func TestUpdateAuthorFieldNormalizesCatalogs(t *testing.T) {
	d := NewDraft()
	_, err := d.UpdateAuthorField(0, models.FieldState, "sp")
	require.NoError(t, err)
	_, err = d.UpdateAuthorField(0, models.FieldRole, "tradutor(a)")
	require.NoError(t, err)

	a := d.Authors()[0]
	require.Equal(t, "SP", a.State)
	require.Equal(t, "Tradutor(a)", a.Role)
}

func TestAccessorsReturnCopies(t *testing.T) {
	d := NewDraft()
	d.AddContract(&models.FileRef{Name: "a.pdf"}, "Cessão")

	authors := d.Authors()
	authors[0].Name = "mutated"
	att := d.Attachments()
	att.Contracts[0].Name = "mutated"

	require.Empty(t, d.Authors()[0].Name)
	require.Equal(t, "Cessão", d.Attachments().Contracts[0].Name)
}

func TestAddContractUsesClockAndIDs(t *testing.T) {
	d := NewDraft(fixedOptions()...)
	first, _ := d.AddContract(&models.FileRef{Name: "a.pdf"}, "  ")
	second, _ := d.AddContract(&models.FileRef{Name: "b.pdf"}, "Edição")

	require.Equal(t, "c-1", first.ID)
	require.Equal(t, "a.pdf", first.Name)
	require.Equal(t, "c-2", second.ID)
	require.Equal(t, "Edição", second.Name)
	require.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), first.UploadedAt)
}

func TestRemoveUnknownContract(t *testing.T) {
	d := NewDraft()
	d.AddContract(&models.FileRef{Name: "a.pdf"}, "")
	_, ok := d.RemoveContract("missing")
	require.False(t, ok)
	require.Len(t, d.Attachments().Contracts, 1)
}

func TestAddRemoveAuthorRestoresCollection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := NewDraft()
		extra := rapid.IntRange(0, 4).Draw(t, "extra")
		for i := 0; i < extra; i++ {
			d.AddAuthor()
		}
		for i := 0; i < d.AuthorCount(); i++ {
			for _, f := range []models.AuthorField{models.FieldName, models.FieldTaxID, models.FieldCity, models.FieldSignature} {
				v := rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "value")
				// keep authors distinguishable even when the drawn value is empty
				if f == models.FieldName {
					v = fmt.Sprintf("%s-%d", v, i)
				}
				_, err := d.UpdateAuthorField(i, f, v)
				require.NoError(t, err)
			}
		}
		beforeAuthors := d.Authors()
		before := d.Checklist()

		d.AddAuthor()
		_, ok := d.RemoveAuthor(d.AuthorCount() - 1)
		require.True(t, ok)
		require.Equal(t, beforeAuthors, d.Authors())
		require.Equal(t, before, d.Checklist())
	})
}

func TestAudioFileReplaced(t *testing.T) {
	d := NewDraft()
	d.SetAudioFile(&models.FileRef{Name: "one.mp3"})
	d.SetAudioFile(&models.FileRef{Name: "two.wav"})
	require.Equal(t, "two.wav", d.Attachments().AudioFile.Name)
}
