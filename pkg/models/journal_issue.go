package models

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/laurel/pkg/fingerprint"
)

// Label applied to every journal issue node.
const JournalIssueLabel = "JournalIssue"

// JournalIssue is the journal an article appeared in, with a free-text
// description of the specific issue.
type JournalIssue struct {
	ID       int64
	PubMedID string
	DOI      string
	Name     string
	Issue    string
}

// ParseJournalString builds a journal issue from the semicolon-delimited
// journal infon of a title passage, e.g. "Nature; (2020) 10 445". The first
// semicolon token is the journal name; the remaining tokens, split on
// whitespace, become the issue description in order.
func ParseJournalString(pubmedID, doi, raw string) JournalIssue {
	tokens := strings.Split(raw, ";")

	name := strings.TrimSpace(tokens[0])
	var parts []string
	for _, tok := range tokens[1:] {
		parts = append(parts, strings.Fields(tok)...)
	}

	return NewJournalIssue(pubmedID, doi, name, strings.Join(parts, " "))
}

// AssembleJournalIssue builds a journal issue from the discrete sub-fields
// carried on a reference passage. Absent fields are skipped; the year is
// parenthesized and a page range is rendered as "first-last".
func AssembleJournalIssue(pubmedID, doi, source, year, volume, issue, firstPage, lastPage string) JournalIssue {
	var parts []string
	if year != "" {
		parts = append(parts, fmt.Sprintf("(%s)", year))
	}
	if volume != "" {
		parts = append(parts, volume)
	}
	if issue != "" {
		parts = append(parts, issue)
	}
	if firstPage != "" {
		pages := firstPage
		if lastPage != "" {
			pages += "-" + lastPage
		}
		parts = append(parts, pages)
	}

	return NewJournalIssue(pubmedID, doi, strings.TrimSpace(source), strings.Join(parts, " "))
}

// NewJournalIssue builds a journal issue with a deterministic id derived
// from the owning article and the journal fields.
func NewJournalIssue(pubmedID, doi, name, issue string) JournalIssue {
	return JournalIssue{
		ID:       fingerprint.ID("journal-issue", pubmedID, name, issue),
		PubMedID: pubmedID,
		DOI:      doi,
		Name:     name,
		Issue:    issue,
	}
}

// IsValid reports whether the journal issue carries enough to persist.
func (j JournalIssue) IsValid() bool {
	return j.Name != ""
}

// Properties returns the node property map for the journal issue.
func (j JournalIssue) Properties() map[string]any {
	return map[string]any{
		"id":        j.ID,
		"pubmed_id": j.PubMedID,
		"doi":       j.DOI,
		"name":      j.Name,
		"issue":     j.Issue,
	}
}
