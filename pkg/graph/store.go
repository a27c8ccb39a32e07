package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// Relationship types between article nodes and their owned entities.
const (
	RelHasAuthor       = "HAS_AUTHOR"
	RelHasAnnotation   = "HAS_ANNOTATION"
	RelHasJournalIssue = "HAS_JOURNAL_ISSUE"
	RelHasReference    = "HAS_REFERENCE"
	RelCitedBy         = "CITED_BY"
)

// Store is the persistence surface of the loader. It owns the upsert
// choreography for articles and their satellites and the citation wiring
// between articles.
type Store struct {
	client *Client
	logger ectologger.Logger
}

// NewStore creates a store backed by the given client.
func NewStore(client *Client, logger ectologger.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
	}
}

// UpsertArticle persists an article and its owned entities: the node itself,
// its labels, its journal issue and its annotations. References and authors
// are handled by the citation pass.
func (s *Store) UpsertArticle(ctx context.Context, article *models.Article) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Store.UpsertArticle")
	defer span.End()

	if !article.IsValid() {
		return fmt.Errorf("article %q: %w", article.Title, ErrUnidentifiedArticle)
	}
	key := pubmedKey(article.PubMedID)

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"pubmed_id":   article.PubMedID,
		"annotations": len(article.Annotations),
	})

	if err := s.mergeArticleNode(ctx, article, key); err != nil {
		return fmt.Errorf("merge article %s: %w", article.PubMedID, err)
	}
	if err := s.addLabels(ctx, key, article.Labels); err != nil {
		return fmt.Errorf("label article %s: %w", article.PubMedID, err)
	}
	if err := s.attachJournalIssue(ctx, key, article.Journal); err != nil {
		log.WithError(err).Error("failed to attach journal issue")
	}
	s.attachAnnotations(ctx, key, article.Annotations)

	log.Debug("article upserted")
	return nil
}

// UpsertReferenceArticle persists a stub node for a cited work that is not
// part of the collection, with the satellites the reference passage carried
// (journal issue, annotations, authors), and wires the citation edges back
// to the citing article.
func (s *Store) UpsertReferenceArticle(ctx context.Context, ref models.Reference) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Store.UpsertReferenceArticle")
	defer span.End()

	stub := ref.Article()
	key, err := keyFor(stub)
	if err != nil {
		return fmt.Errorf("reference of %s: %w", ref.ParentPubMedID, err)
	}

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"parent_pubmed_id": ref.ParentPubMedID,
		"pubmed_id":        ref.PubMedID,
		"doi":              ref.DOI,
	})

	if err := s.mergeArticleNode(ctx, stub, key); err != nil {
		return fmt.Errorf("merge reference article: %w", err)
	}
	if err := s.attachJournalIssue(ctx, key, stub.Journal); err != nil {
		log.WithError(err).Error("failed to attach journal issue")
	}
	s.attachAnnotations(ctx, key, stub.Annotations)
	s.attachAuthors(ctx, key, stub.Authors)
	if err := s.wireCitation(ctx, pubmedKey(ref.ParentPubMedID), key); err != nil {
		return err
	}

	log.Debug("reference article upserted")
	return nil
}

// LinkCitation wires a citation between two loaded article nodes.
func (s *Store) LinkCitation(ctx context.Context, citingPubMedID, citedPubMedID string) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Store.LinkCitation")
	defer span.End()

	return s.wireCitation(ctx, pubmedKey(citingPubMedID), pubmedKey(citedPubMedID))
}

// wireCitation creates the edge pair between citing and cited article and
// marks the cited node with the reference label: HAS_REFERENCE from the
// citing side, CITED_BY back from the cited one.
func (s *Store) wireCitation(ctx context.Context, citing, cited articleKey) error {
	if err := s.linkArticles(ctx, citing, cited, RelHasReference); err != nil {
		return fmt.Errorf("link %v HAS_REFERENCE %v: %w", citing.value, cited.value, err)
	}
	if err := s.linkArticles(ctx, cited, citing, RelCitedBy); err != nil {
		return fmt.Errorf("link %v CITED_BY %v: %w", cited.value, citing.value, err)
	}
	if err := s.addLabels(ctx, cited, []string{models.ReferenceLabel}); err != nil {
		return fmt.Errorf("mark %v as reference: %w", cited.value, err)
	}
	return nil
}
