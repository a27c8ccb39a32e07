package graph

import (
	"fmt"
	"strings"
	"unicode"
)

// sanitizeLabel strips characters that are not legal in a label or
// relationship type. Labels cannot be bound as query parameters, so every
// name interpolated into cypher goes through here first.
func sanitizeLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// labelExpr renders a sanitized colon-prefixed label chain for use in a
// node pattern, e.g. `:PubMedArticle:LitCovid`.
func labelExpr(labels []string) string {
	var b strings.Builder
	for _, label := range labels {
		if clean := sanitizeLabel(label); clean != "" {
			b.WriteString(":")
			b.WriteString(clean)
		}
	}
	return b.String()
}

// mergeNodeQuery builds an upsert for a node keyed by a single property.
// The key property participates in the MERGE pattern; all properties are
// then overlaid with += so repeated loads refresh the node in place.
func mergeNodeQuery(label, keyProp string) string {
	return fmt.Sprintf(
		"MERGE (n:%s {%s: $key}) SET n += $props",
		sanitizeLabel(label), sanitizeLabel(keyProp),
	)
}

// mergeRelationshipQuery builds an idempotent edge upsert between two nodes
// matched by label and key property.
func mergeRelationshipQuery(fromLabel, fromKey, toLabel, toKey, relType string) string {
	return fmt.Sprintf(
		"MATCH (a:%s {%s: $fromKey}) MATCH (b:%s {%s: $toKey}) MERGE (a)-[r:%s]->(b)",
		sanitizeLabel(fromLabel), sanitizeLabel(fromKey),
		sanitizeLabel(toLabel), sanitizeLabel(toKey),
		sanitizeLabel(relType),
	)
}
