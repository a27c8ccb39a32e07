package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// ArticleExists reports whether an article node with the given pubmed id is
// already in the graph. The citation pass uses this to decide between
// linking two loaded articles and creating a stub for an external work.
func (s *Store) ArticleExists(ctx context.Context, pubmedID string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.Store.ArticleExists")
	defer span.End()

	query := fmt.Sprintf(
		"OPTIONAL MATCH (n:%s {pubmed_id: $key}) RETURN n IS NOT NULL AS exists",
		sanitizeLabel(models.ArticleLabel),
	)

	exists, err := s.readBool(ctx, query, map[string]any{"key": pubmedID}, "exists")
	if err != nil {
		return false, fmt.Errorf("check article %s exists: %w", pubmedID, err)
	}
	return exists, nil
}

// HasLabel reports whether the article node already carries the label.
func (s *Store) HasLabel(ctx context.Context, pubmedID, label string) (bool, error) {
	return s.hasLabel(ctx, pubmedKey(pubmedID), label)
}

func (s *Store) hasLabel(ctx context.Context, key articleKey, label string) (bool, error) {
	query := fmt.Sprintf(
		"OPTIONAL MATCH (n:%s {%s: $key}) RETURN n IS NOT NULL AND $label IN labels(n) AS has",
		sanitizeLabel(models.ArticleLabel), sanitizeLabel(key.prop),
	)

	has, err := s.readBool(ctx, query, map[string]any{"key": key.value, "label": label}, "has")
	if err != nil {
		return false, fmt.Errorf("check label %s on %v: %w", label, key.value, err)
	}
	return has, nil
}

// CountArticles returns the number of article nodes in the graph.
func (s *Store) CountArticles(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.Store.CountArticles")
	defer span.End()

	query := fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS total", sanitizeLabel(models.ArticleLabel))

	value, err := s.readValue(ctx, query, nil, "total")
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}

	total, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("count articles: unexpected result type %T", value)
	}
	return total, nil
}

func (s *Store) readBool(ctx context.Context, query string, params map[string]any, field string) (bool, error) {
	value, err := s.readValue(ctx, query, params, field)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected result type %T for %s", value, field)
	}
	return b, nil
}

func (s *Store) readValue(ctx context.Context, query string, params map[string]any, field string) (any, error) {
	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		value, found := record.Get(field)
		if !found {
			return nil, fmt.Errorf("result has no %s field", field)
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
