// Package extractor resolves the loosely structured infon metadata of BioC
// documents into typed entities. BioC carries everything as string key/value
// pairs on passages; this package knows which keys matter, where they live,
// and what the fallbacks are when a document is missing the usual ones.
package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ramsey-B/laurel/pkg/bioc"
	"github.com/Ramsey-B/laurel/pkg/models"
)

// Infon keys used across the collection. Title passages carry the
// article-id_* family; reference passages carry the pub-id_* family.
const (
	KeyArticlePubMedID = "article-id_pmid"
	KeyArticleDOI      = "article-id_doi"
	KeyArticlePmcID    = "article-id_pmc"
	KeyRefPubMedID     = "pub-id_pmid"
	KeyRefDOI          = "pub-id_doi"
	KeySectionType     = "section_type"
	KeyType            = "type"
	KeyJournal         = "journal"
	KeySource          = "source"
	KeyYear            = "year"
	KeyVolume          = "volume"
	KeyIssue           = "issue"
	KeyFirstPage       = "fpage"
	KeyLastPage        = "lpage"
	AuthorKeyPrefix    = "name_"
)

// Values of the section_type and type infons that drive passage routing.
const (
	SectionTitle    = "TITLE"
	SectionAbstract = "ABSTRACT"
	SectionRef      = "REF"
	TypeTitle       = "title"
	TypeAbstract    = "abstract"
	TypeRef         = "ref"
)

// Sentinel stored for articles that have no PMC identifier.
const PmcIDMissing = "NA"

// ErrNoTitlePassage is returned when a document has no passage that can act
// as its metadata root.
var ErrNoTitlePassage = errors.New("document has no title passage")

// TitlePassage finds the passage that carries the article's identifiers.
// The primary shape is section_type=TITLE; older documents mark it with
// type=title instead and may lack the pmid infon, in which case the
// document id is injected so downstream resolution stays uniform.
func TitlePassage(doc *bioc.Document) (*bioc.Passage, error) {
	for i := range doc.Passages {
		p := &doc.Passages[i]
		if section, _ := p.Infon(KeySectionType); section == SectionTitle {
			return p, nil
		}
	}

	for i := range doc.Passages {
		p := &doc.Passages[i]
		if t, _ := p.Infon(KeyType); t != TypeTitle {
			continue
		}
		if !p.HasInfon(KeyArticlePubMedID) && doc.ID != "" {
			p.PutInfon(KeyArticlePubMedID, doc.ID)
		}
		return p, nil
	}

	return nil, fmt.Errorf("document %q: %w", doc.ID, ErrNoTitlePassage)
}

// PubMedID resolves the pmid of a title passage.
func PubMedID(p *bioc.Passage) string {
	return strings.TrimSpace(p.InfonOrDefault(KeyArticlePubMedID, ""))
}

// DOI resolves the doi of a title passage. Some documents only carry the
// doi as a "doi:..." token inside the journal infon; that token is the
// fallback when the dedicated key is absent.
func DOI(p *bioc.Passage) string {
	if v, ok := p.Infon(KeyArticleDOI); ok {
		return strings.TrimSpace(v)
	}

	journal, _ := p.Infon(KeyJournal)
	for _, token := range strings.Fields(journal) {
		if rest, found := strings.CutPrefix(token, "doi:"); found {
			return rest
		}
	}
	return ""
}

// PmcID resolves the PMC identifier of a title passage, defaulting to the
// "NA" sentinel the graph stores for articles without one.
func PmcID(p *bioc.Passage) string {
	return strings.TrimSpace(p.InfonOrDefault(KeyArticlePmcID, PmcIDMissing))
}

// ReferencePubMedID resolves the cited work's pmid from a reference passage.
func ReferencePubMedID(p *bioc.Passage) string {
	return strings.TrimSpace(p.InfonOrDefault(KeyRefPubMedID, ""))
}

// ReferenceDOI resolves the cited work's doi from a reference passage.
func ReferenceDOI(p *bioc.Passage) string {
	return strings.TrimSpace(p.InfonOrDefault(KeyRefDOI, ""))
}

// Abstract returns the text of the document's first abstract passage, or
// the empty string when the document has none. First wins when a document
// carries several. Both infons must agree; the ABSTRACT section also holds
// heading passages typed abstract_title, which are not the abstract.
func Abstract(doc *bioc.Document) string {
	for i := range doc.Passages {
		p := &doc.Passages[i]
		section, _ := p.Infon(KeySectionType)
		t, _ := p.Infon(KeyType)
		if section == SectionAbstract && t == TypeAbstract {
			return p.Text
		}
	}
	return ""
}

// Journal resolves the journal issue of a title passage from its
// semicolon-delimited journal infon.
func Journal(pubmedID, doi string, p *bioc.Passage) models.JournalIssue {
	raw, ok := p.Infon(KeyJournal)
	if !ok {
		return models.JournalIssue{}
	}
	return models.ParseJournalString(pubmedID, doi, raw)
}

// Authors resolves the author list of a passage from its name_<n> infons.
// Entries that do not parse to at least a surname are dropped.
func Authors(pubmedID string, p *bioc.Passage) []models.Author {
	var authors []models.Author
	for _, in := range p.Infons {
		if !strings.HasPrefix(in.Key, AuthorKeyPrefix) {
			continue
		}
		if author := models.ParseAuthor(pubmedID, in.Value); author.IsValid() {
			authors = append(authors, author)
		}
	}
	return authors
}

// Annotations gathers the valid annotations of every non-reference passage,
// de-duplicated by derived id. Reference passages annotate cited works, not
// this document, and are resolved separately.
func Annotations(pubmedID string, doc *bioc.Document) map[int64]models.Annotation {
	annotations := make(map[int64]models.Annotation)
	for i := range doc.Passages {
		p := &doc.Passages[i]
		if section, _ := p.Infon(KeySectionType); section == SectionRef {
			continue
		}
		collectAnnotations(pubmedID, p.Annotations, annotations)
	}
	return annotations
}

// References resolves the document's reference list from its reference
// passages. Only references that carry at least one identifier survive.
func References(parentPubMedID string, doc *bioc.Document) []models.Reference {
	var refs []models.Reference
	for i := range doc.Passages {
		p := &doc.Passages[i]
		if !isReferencePassage(p) {
			continue
		}
		if ref := parseReference(parentPubMedID, p); ref.IsValid() {
			refs = append(refs, ref)
		}
	}
	return refs
}

// BuildArticle resolves a whole document into an article entity rooted at
// its title passage. The reference list is left for the second pass.
func BuildArticle(doc *bioc.Document) (*models.Article, error) {
	title, err := TitlePassage(doc)
	if err != nil {
		return nil, err
	}

	pubmedID := PubMedID(title)
	doi := DOI(title)

	return &models.Article{
		PubMedID:    pubmedID,
		PmcID:       PmcID(title),
		DOI:         doi,
		Title:       title.Text,
		Abstract:    Abstract(doc),
		Labels:      []string{models.ArticleLabel, models.CollectionLabel},
		Authors:     Authors(pubmedID, title),
		Journal:     Journal(pubmedID, doi, title),
		Annotations: Annotations(pubmedID, doc),
	}, nil
}

func parseReference(parentPubMedID string, p *bioc.Passage) models.Reference {
	pubmedID := ReferencePubMedID(p)
	doi := ReferenceDOI(p)

	annotations := make(map[int64]models.Annotation)
	collectAnnotations(pubmedID, p.Annotations, annotations)

	return models.Reference{
		ParentPubMedID: parentPubMedID,
		PubMedID:       pubmedID,
		DOI:            doi,
		Title:          p.Text,
		Authors:        Authors(pubmedID, p),
		Annotations:    annotations,
		Journal: models.AssembleJournalIssue(
			pubmedID,
			doi,
			p.InfonOrDefault(KeySource, ""),
			p.InfonOrDefault(KeyYear, ""),
			p.InfonOrDefault(KeyVolume, ""),
			p.InfonOrDefault(KeyIssue, ""),
			p.InfonOrDefault(KeyFirstPage, ""),
			p.InfonOrDefault(KeyLastPage, ""),
		),
	}
}

func collectAnnotations(pubmedID string, raw []bioc.Annotation, into map[int64]models.Annotation) {
	for _, ra := range raw {
		if ann := models.ParseAnnotation(pubmedID, ra); ann.IsValid() {
			into[ann.ID] = ann
		}
	}
}

// isReferencePassage requires both reference markers. The REF section also
// carries heading and layout passages that are not citations.
func isReferencePassage(p *bioc.Passage) bool {
	section, _ := p.Infon(KeySectionType)
	t, _ := p.Infon(KeyType)
	return section == SectionRef && t == TypeRef
}
