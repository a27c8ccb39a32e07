package models

import (
	"strings"

	"github.com/Ramsey-B/laurel/pkg/fingerprint"
)

// Label applied to every author node.
const AuthorLabel = "Author"

// Author is one entry from an article's author list.
type Author struct {
	ID        int64
	PubMedID  string
	Surname   string
	GivenName string
}

// ParseAuthor builds an author from the raw infon value, a semicolon list of
// colon-separated pairs such as "surname:Smith;given-names:John". The
// surname key maps to the surname; any other key's value is taken as the
// given name. Missing values default to the empty string.
func ParseAuthor(pubmedID, raw string) Author {
	author := Author{
		ID:       fingerprint.ID("author", raw),
		PubMedID: pubmedID,
	}

	for _, pair := range strings.Split(raw, ";") {
		key, value, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == "surname" {
			author.Surname = strings.TrimSpace(value)
		} else {
			author.GivenName = strings.TrimSpace(value)
		}
	}

	return author
}

// IsValid reports whether the author is worth persisting. A surname is the
// minimum; a bare "surname:" entry is discarded.
func (a Author) IsValid() bool {
	return a.Surname != ""
}

// Properties returns the node property map for the author.
func (a Author) Properties() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"pubmed_id":  a.PubMedID,
		"surname":    a.Surname,
		"given_name": a.GivenName,
	}
}
