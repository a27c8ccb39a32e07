package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJournalString(t *testing.T) {
	journal := ParseJournalString("123", "10.1/x", "Nature; (2020) 10 445")

	assert.Equal(t, "Nature", journal.Name)
	assert.Equal(t, "(2020) 10 445", journal.Issue)
	assert.Equal(t, "123", journal.PubMedID)
	assert.Equal(t, "10.1/x", journal.DOI)
	assert.True(t, journal.IsValid())
}

func TestParseJournalString_NameOnly(t *testing.T) {
	journal := ParseJournalString("123", "", "The Lancet")

	assert.Equal(t, "The Lancet", journal.Name)
	assert.Empty(t, journal.Issue)
	assert.True(t, journal.IsValid())
}

func TestParseJournalString_EmptyName(t *testing.T) {
	journal := ParseJournalString("123", "", "; (2020)")

	assert.False(t, journal.IsValid())
}

func TestAssembleJournalIssue(t *testing.T) {
	tests := []struct {
		name  string
		year  string
		vol   string
		issue string
		fpage string
		lpage string
		want  string
	}{
		{name: "all fields", year: "2020", vol: "10", issue: "4", fpage: "445", lpage: "452", want: "(2020) 10 4 445-452"},
		{name: "no pages", year: "2020", vol: "10", want: "(2020) 10"},
		{name: "first page only", year: "2019", fpage: "12", want: "(2019) 12"},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := AssembleJournalIssue("123", "", "BMJ", tt.year, tt.vol, tt.issue, tt.fpage, tt.lpage)

			assert.Equal(t, "BMJ", journal.Name)
			assert.Equal(t, tt.want, journal.Issue)
		})
	}
}

func TestNewJournalIssue_StableID(t *testing.T) {
	first := NewJournalIssue("123", "", "Nature", "(2020) 10")
	second := NewJournalIssue("123", "", "Nature", "(2020) 10")
	other := NewJournalIssue("456", "", "Nature", "(2020) 10")

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, other.ID)
}
