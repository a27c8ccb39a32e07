package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "clean label", input: "PubMedArticle", want: "PubMedArticle"},
		{name: "underscores kept", input: "HAS_REFERENCE", want: "HAS_REFERENCE"},
		{name: "injection stripped", input: "Disease`) DETACH DELETE (n", want: "DiseaseDETACHDELETEn"},
		{name: "spaces stripped", input: "Cell Line", want: "CellLine"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeLabel(tt.input))
		})
	}
}

func TestLabelExpr(t *testing.T) {
	assert.Equal(t, ":PubMedArticle:LitCovid", labelExpr([]string{"PubMedArticle", "LitCovid"}))
	assert.Equal(t, ":Annotation", labelExpr([]string{"Annotation", "!!"}))
	assert.Empty(t, labelExpr(nil))
}

func TestMergeNodeQuery(t *testing.T) {
	query := mergeNodeQuery("PubMedArticle", "pubmed_id")
	assert.Equal(t, "MERGE (n:PubMedArticle {pubmed_id: $key}) SET n += $props", query)
}

func TestMergeRelationshipQuery(t *testing.T) {
	query := mergeRelationshipQuery("PubMedArticle", "pubmed_id", "Author", "id", "HAS_AUTHOR")
	assert.Equal(t,
		"MATCH (a:PubMedArticle {pubmed_id: $fromKey}) MATCH (b:Author {id: $toKey}) MERGE (a)-[r:HAS_AUTHOR]->(b)",
		query,
	)
}
