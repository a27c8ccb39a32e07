package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// articleKey identifies an article node for matching. Loaded articles are
// always keyed by pubmed id; stubs for cited works may only have a doi.
type articleKey struct {
	prop  string
	value any
}

func pubmedKey(pubmedID string) articleKey {
	return articleKey{prop: "pubmed_id", value: pubmedID}
}

// keyFor picks the merge key for an article node.
func keyFor(article *models.Article) (articleKey, error) {
	if article.PubMedID != "" {
		return pubmedKey(article.PubMedID), nil
	}
	if article.DOI != "" {
		return articleKey{prop: "doi", value: article.DOI}, nil
	}
	return articleKey{}, ErrUnidentifiedArticle
}

// mergeArticleNode upserts the article node itself. An empty pubmed id is
// kept out of the property map so doi-keyed stubs do not collide on the
// pubmed id uniqueness constraint.
func (s *Store) mergeArticleNode(ctx context.Context, article *models.Article, key articleKey) error {
	props := article.Properties()
	if article.PubMedID == "" {
		delete(props, "pubmed_id")
	}

	return s.write(ctx, mergeNodeQuery(models.ArticleLabel, key.prop), map[string]any{
		"key":   key.value,
		"props": props,
	})
}

// attachJournalIssue upserts the journal issue node and links the article
// to it. Articles without a resolvable journal are left unlinked.
func (s *Store) attachJournalIssue(ctx context.Context, owner articleKey, journal models.JournalIssue) error {
	if !journal.IsValid() {
		return nil
	}

	if err := s.mergeNode(ctx, models.JournalIssueLabel, "id", journal.ID, journal.Properties()); err != nil {
		return fmt.Errorf("merge journal issue %q: %w", journal.Name, err)
	}
	return s.link(ctx, owner, models.JournalIssueLabel, "id", journal.ID, RelHasJournalIssue)
}

// attachAnnotations upserts each annotation node with its type label and
// links the article to it. A failed annotation is logged and skipped so the
// rest of the document's annotations still land.
func (s *Store) attachAnnotations(ctx context.Context, owner articleKey, annotations map[int64]models.Annotation) {
	log := s.logger.WithContext(ctx)

	for _, ann := range annotations {
		query := fmt.Sprintf("MERGE (n%s {id: $key}) SET n += $props", labelExpr(ann.Labels()))
		if err := s.write(ctx, query, map[string]any{"key": ann.ID, "props": ann.Properties()}); err != nil {
			log.WithError(err).WithFields(map[string]any{
				"type":       ann.Type,
				"identifier": ann.Identifier,
			}).Error("failed to merge annotation")
			continue
		}
		if err := s.link(ctx, owner, models.AnnotationLabel, "id", ann.ID, RelHasAnnotation); err != nil {
			log.WithError(err).WithFields(map[string]any{
				"type":       ann.Type,
				"identifier": ann.Identifier,
			}).Error("failed to link annotation")
		}
	}
}

// attachAuthors upserts each author node and links the article to it, with
// the same per-item containment as annotations.
func (s *Store) attachAuthors(ctx context.Context, owner articleKey, authors []models.Author) {
	log := s.logger.WithContext(ctx)

	for _, author := range authors {
		if err := s.mergeNode(ctx, models.AuthorLabel, "id", author.ID, author.Properties()); err != nil {
			log.WithError(err).WithFields(map[string]any{"surname": author.Surname}).Error("failed to merge author")
			continue
		}
		if err := s.link(ctx, owner, models.AuthorLabel, "id", author.ID, RelHasAuthor); err != nil {
			log.WithError(err).WithFields(map[string]any{"surname": author.Surname}).Error("failed to link author")
		}
	}
}

// AddLabels sets each label on the article node, probing first so already
// present labels cost a read instead of a write.
func (s *Store) AddLabels(ctx context.Context, pubmedID string, labels []string) error {
	return s.addLabels(ctx, pubmedKey(pubmedID), labels)
}

func (s *Store) addLabels(ctx context.Context, key articleKey, labels []string) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Store.AddLabels")
	defer span.End()

	for _, label := range labels {
		has, err := s.hasLabel(ctx, key, label)
		if err != nil {
			return err
		}
		if has {
			continue
		}

		query := fmt.Sprintf(
			"MATCH (n:%s {%s: $key}) SET n%s",
			sanitizeLabel(models.ArticleLabel), sanitizeLabel(key.prop), labelExpr([]string{label}),
		)
		if err := s.write(ctx, query, map[string]any{"key": key.value}); err != nil {
			return fmt.Errorf("set label %s: %w", label, err)
		}
	}
	return nil
}

// mergeNode upserts a node keyed by a single property.
func (s *Store) mergeNode(ctx context.Context, label, keyProp string, key any, props map[string]any) error {
	return s.write(ctx, mergeNodeQuery(label, keyProp), map[string]any{"key": key, "props": props})
}

// link upserts an edge from the article to an owned entity node.
func (s *Store) link(ctx context.Context, owner articleKey, toLabel, toKey string, toValue any, relType string) error {
	query := mergeRelationshipQuery(models.ArticleLabel, owner.prop, toLabel, toKey, relType)
	return s.write(ctx, query, map[string]any{"fromKey": owner.value, "toKey": toValue})
}

// linkArticles upserts an edge between two article nodes.
func (s *Store) linkArticles(ctx context.Context, from, to articleKey, relType string) error {
	query := mergeRelationshipQuery(models.ArticleLabel, from.prop, models.ArticleLabel, to.prop, relType)
	return s.write(ctx, query, map[string]any{"fromKey": from.value, "toKey": to.value})
}

// write runs a single parameterized statement in a managed write
// transaction and drains the result.
func (s *Store) write(ctx context.Context, query string, params map[string]any) error {
	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	return err
}
