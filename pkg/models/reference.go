package models

// Label added to article nodes once something in the collection cites them.
const ReferenceLabel = "REFERENCE"

// Reference is one entry from an article's reference list: the identifiers
// of the cited work plus the minimal article fields a reference passage
// carries, used to create a stub node when the cited work is not part of
// the collection itself.
type Reference struct {
	ParentPubMedID string
	PubMedID       string
	DOI            string
	Title          string

	Journal     JournalIssue
	Authors     []Author
	Annotations map[int64]Annotation
}

// IsValid reports whether the reference resolves to anything citable. At
// least one of the two identifiers must be present.
func (r Reference) IsValid() bool {
	return r.PubMedID != "" || r.DOI != ""
}

// Article projects the reference into a stub article for persistence when
// the cited work is external to the collection. Stubs get the base article
// label only, not the collection label.
func (r Reference) Article() *Article {
	return &Article{
		PubMedID:    r.PubMedID,
		DOI:         r.DOI,
		Title:       r.Title,
		Labels:      []string{ArticleLabel},
		Journal:     r.Journal,
		Authors:     r.Authors,
		Annotations: r.Annotations,
	}
}
