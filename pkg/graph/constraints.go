package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// uniqueConstraints pins the key property of each node kind. Creation is
// idempotent, so startup can apply them unconditionally.
var uniqueConstraints = []struct {
	name     string
	label    string
	property string
}{
	{"pubmed_article_pubmed_id", models.ArticleLabel, "pubmed_id"},
	{"author_id", models.AuthorLabel, "id"},
	{"journal_issue_id", models.JournalIssueLabel, "id"},
	{"annotation_id", models.AnnotationLabel, "id"},
}

// EnsureConstraints creates the uniqueness constraints the loader relies on
// for stable MERGE semantics.
func (s *Store) EnsureConstraints(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Store.EnsureConstraints")
	defer span.End()

	log := s.logger.WithContext(ctx)

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, c := range uniqueConstraints {
			query := fmt.Sprintf(
				"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
				sanitizeLabel(c.name), sanitizeLabel(c.label), sanitizeLabel(c.property),
			)
			result, err := tx.Run(ctx, query, nil)
			if err != nil {
				return nil, fmt.Errorf("create constraint %s: %w", c.name, err)
			}
			if _, err := result.Consume(ctx); err != nil {
				return nil, fmt.Errorf("create constraint %s: %w", c.name, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	log.WithFields(map[string]any{"constraints": len(uniqueConstraints)}).Debug("graph constraints ensured")
	return nil
}
