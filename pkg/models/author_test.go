package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAuthor(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		surname   string
		givenName string
		valid     bool
	}{
		{
			name:      "full name",
			raw:       "surname:Smith;given-names:John",
			surname:   "Smith",
			givenName: "John",
			valid:     true,
		},
		{
			name:    "surname only",
			raw:     "surname:Li",
			surname: "Li",
			valid:   true,
		},
		{
			name:  "empty surname value",
			raw:   "surname:",
			valid: false,
		},
		{
			name:      "non-surname key maps to given name",
			raw:       "collab:WHO Working Group",
			givenName: "WHO Working Group",
			valid:     false,
		},
		{
			name:      "singular given-name key",
			raw:       "surname:Smith;given-name:John",
			surname:   "Smith",
			givenName: "John",
			valid:     true,
		},
		{
			name:      "whitespace trimmed",
			raw:       "surname: Smith ;given-names: John ",
			surname:   "Smith",
			givenName: "John",
			valid:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			author := ParseAuthor("123", tt.raw)

			assert.Equal(t, tt.surname, author.Surname)
			assert.Equal(t, tt.givenName, author.GivenName)
			assert.Equal(t, tt.valid, author.IsValid())
			assert.Equal(t, "123", author.PubMedID)
		})
	}
}

func TestParseAuthor_StableID(t *testing.T) {
	first := ParseAuthor("123", "surname:Smith;given-names:John")
	second := ParseAuthor("123", "surname:Smith;given-names:John")
	other := ParseAuthor("123", "surname:Smith;given-names:Jane")

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, other.ID)
}
