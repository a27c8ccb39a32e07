// Package models holds the graph-facing entities extracted from BioC
// documents: articles, authors, journal issues, annotations and citation
// references. Each entity knows its own validity rules and the property map
// it contributes to the graph.
package models

// Label applied to every article node regardless of origin.
const ArticleLabel = "PubMedArticle"

// Label applied to articles loaded from the primary collection, as opposed
// to stubs created for external citations.
const CollectionLabel = "LitCovid"

// Article is the root entity for one document: its identifiers, text fields
// and the owned entities hanging off it.
type Article struct {
	PubMedID string
	PmcID    string
	DOI      string
	Title    string
	Abstract string

	Labels      []string
	Authors     []Author
	Journal     JournalIssue
	Annotations map[int64]Annotation
	References  []Reference
}

// IsValid reports whether the article can be keyed in the graph.
func (a *Article) IsValid() bool {
	return a.PubMedID != ""
}

// Properties returns the node property map for the article.
func (a *Article) Properties() map[string]any {
	return map[string]any{
		"pubmed_id": a.PubMedID,
		"pmc_id":    a.PmcID,
		"doi":       a.DOI,
		"title":     a.Title,
		"abstract":  a.Abstract,
	}
}
