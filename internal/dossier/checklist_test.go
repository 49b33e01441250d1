package dossier

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"musicreg/pkg/models"
)

func completeDraft(t require.TestingT) *Draft {
	d := NewDraft()
	d.SetTitle("Minha Música")
	_, err := d.UpdateAuthorField(0, models.FieldName, "Ana Silva")
	require.NoError(t, err)
	_, err = d.UpdateAuthorField(0, models.FieldTaxID, "123.456.789-00")
	require.NoError(t, err)
	_, err = d.UpdateAuthorField(0, models.FieldSignature, "Ana Silva")
	require.NoError(t, err)
	d.SetLyricText("la la la")
	d.SetAudioFile(&models.FileRef{Name: "demo.mp3", Size: 1024, ContentType: "audio/mpeg"})
	return d
}

func TestScenarioAllRequirementsMet(t *testing.T) {
	d := completeDraft(t)
	c := d.Checklist()

	require.Equal(t, models.ChecklistSize, c.Completed())
	require.True(t, c.SummaryComplete)
	require.Equal(t, 100, Progress(c))
	require.Equal(t, models.DefaultGenre, d.Work().Genre)
}

func TestScenarioSecondAuthorWithoutSignature(t *testing.T) {
	d := completeDraft(t)
	d.AddAuthor()
	_, err := d.UpdateAuthorField(1, models.FieldName, "Bruno Costa")
	require.NoError(t, err)
	c, err := d.UpdateAuthorField(1, models.FieldTaxID, "987.654.321-00")
	require.NoError(t, err)

	require.True(t, c.TitlePresent)
	require.True(t, c.LyricsPresent)
	require.True(t, c.AudioPresent)
	require.True(t, c.AuthorsIdentified)
	require.False(t, c.AuthorshipProof)
	require.False(t, c.CoauthorshipDeclaration)
	require.False(t, c.ContractsData)
	require.False(t, c.SummaryComplete)
	require.Less(t, Progress(c), 100)
}

func TestScenarioContractAddedThenRemoved(t *testing.T) {
	d := NewDraft()
	d.AddAuthor()
	before := d.Checklist()
	require.False(t, before.ContractsData)

	contract, c := d.AddContract(&models.FileRef{Name: "cessao.pdf"}, "")
	require.True(t, c.ContractsData)
	require.True(t, c.CoauthorshipDeclaration)
	require.Equal(t, "cessao.pdf", contract.Name)
	require.Equal(t, models.ContractType, contract.Type)

	c, ok := d.RemoveContract(contract.ID)
	require.True(t, ok)
	require.Empty(t, d.Attachments().Contracts)
	require.Equal(t, before, c)
}

func TestWhitespaceDoesNotSatisfyRequirements(t *testing.T) {
	d := NewDraft()
	c := d.SetTitle("   ")
	require.False(t, c.TitlePresent)

	c = d.SetLyricText("\n\t ")
	require.False(t, c.LyricsPresent)

	_, err := d.UpdateAuthorField(0, models.FieldName, "  ")
	require.NoError(t, err)
	c, err = d.UpdateAuthorField(0, models.FieldTaxID, "123")
	require.NoError(t, err)
	require.False(t, c.AuthorsIdentified)

	c, err = d.UpdateAuthorField(0, models.FieldSignature, " ")
	require.NoError(t, err)
	require.False(t, c.AuthorshipProof)
}

func TestLyricFileSatisfiesLyrics(t *testing.T) {
	d := NewDraft()
	c := d.SetLyricFile(&models.FileRef{Name: "letra.txt"})
	require.True(t, c.LyricsPresent)

	c = d.SetLyricFile(nil)
	require.False(t, c.LyricsPresent)
}

func TestSingleAuthorSatisfiesCoauthorshipAndContracts(t *testing.T) {
	c := NewDraft().Checklist()
	require.True(t, c.CoauthorshipDeclaration)
	require.True(t, c.ContractsData)
	require.False(t, c.SummaryComplete)
}

func TestProgressTable(t *testing.T) {
	cases := []struct {
		set  int
		want int
	}{
		{0, 0}, {1, 13}, {2, 25}, {3, 38}, {4, 50}, {5, 63}, {6, 75}, {7, 88}, {8, 100},
	}
	for _, tc := range cases {
		var c models.Checklist
		flags := []*bool{
			&c.TitlePresent, &c.LyricsPresent, &c.AudioPresent, &c.AuthorsIdentified,
			&c.AuthorshipProof, &c.CoauthorshipDeclaration, &c.ContractsData, &c.SummaryComplete,
		}
		for i := 0; i < tc.set; i++ {
			*flags[i] = true
		}
		require.Equal(t, tc.want, Progress(c), "%d flags set", tc.set)
	}
}

// mutation is one random edit applied to a draft.
type mutation func(t *rapid.T, d *Draft)

func mutations() []mutation {
	text := rapid.SampledFrom([]string{"", " ", "x", "Ana", "\t"})
	return []mutation{
		func(t *rapid.T, d *Draft) { d.SetTitle(text.Draw(t, "title")) },
		func(t *rapid.T, d *Draft) { d.SetLyricText(text.Draw(t, "lyrics")) },
		func(t *rapid.T, d *Draft) {
			if rapid.Bool().Draw(t, "audio") {
				d.SetAudioFile(&models.FileRef{Name: "a.mp3"})
			} else {
				d.SetAudioFile(nil)
			}
		},
		func(t *rapid.T, d *Draft) { d.AddAuthor() },
		func(t *rapid.T, d *Draft) {
			d.RemoveAuthor(rapid.IntRange(-1, d.AuthorCount()).Draw(t, "remove"))
		},
		func(t *rapid.T, d *Draft) {
			field := rapid.SampledFrom([]models.AuthorField{
				models.FieldName, models.FieldTaxID, models.FieldSignature,
			}).Draw(t, "field")
			i := rapid.IntRange(0, d.AuthorCount()-1).Draw(t, "author")
			_, _ = d.UpdateAuthorField(i, field, text.Draw(t, "value"))
		},
		func(t *rapid.T, d *Draft) { d.AddContract(&models.FileRef{Name: "c.pdf"}, "") },
		func(t *rapid.T, d *Draft) {
			contracts := d.Attachments().Contracts
			if len(contracts) > 0 {
				d.RemoveContract(contracts[0].ID)
			}
		},
	}
}

func TestChecklistProperties(t *testing.T) {
	ms := mutations()
	rapid.Check(t, func(t *rapid.T) {
		d := NewDraft()
		steps := rapid.IntRange(0, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			ms[rapid.IntRange(0, len(ms)-1).Draw(t, "op")](t, d)

			c := d.Checklist()
			require.Equal(t, Derive(d), c)
			require.GreaterOrEqual(t, d.AuthorCount(), 1)

			p := Progress(c)
			require.GreaterOrEqual(t, p, 0)
			require.LessOrEqual(t, p, 100)
			require.Equal(t, p == 100, c.SummaryComplete)

			sevenSet := c.TitlePresent && c.LyricsPresent && c.AudioPresent && c.AuthorsIdentified &&
				c.AuthorshipProof && c.CoauthorshipDeclaration && c.ContractsData
			require.Equal(t, sevenSet, c.SummaryComplete)

			if d.AuthorCount() == 1 {
				require.True(t, c.CoauthorshipDeclaration)
				require.True(t, c.ContractsData)
			}
		}
	})
}

func TestLastRequirementMovesProgressByTwoFlags(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := completeDraft(t)
		// Knocking out exactly one requirement always costs two flags.
		switch rapid.IntRange(0, 2).Draw(t, "drop") {
		case 0:
			d.SetTitle("")
		case 1:
			d.SetAudioFile(nil)
		case 2:
			d.SetLyricText("")
		}
		require.Equal(t, 75, Progress(d.Checklist()))
	})
}
