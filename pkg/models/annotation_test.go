package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/laurel/pkg/bioc"
)

func rawAnnotation(annType, identifier, text string) bioc.Annotation {
	return bioc.Annotation{
		Infons: []bioc.Infon{
			{Key: "type", Value: annType},
			{Key: "identifier", Value: identifier},
		},
		Text: text,
	}
}

func TestParseAnnotation(t *testing.T) {
	ann := ParseAnnotation("123", rawAnnotation("Disease", "MESH:D011024", "pneumonia"))

	assert.Equal(t, "Disease", ann.Type)
	assert.Equal(t, "MESH:D011024", ann.Identifier)
	assert.Equal(t, "pneumonia", ann.Text)
	assert.Equal(t, "123", ann.PubMedID)
	assert.True(t, ann.IsValid())
	assert.Equal(t, []string{AnnotationLabel, "Disease"}, ann.Labels())
}

func TestParseAnnotation_SameConceptSameID(t *testing.T) {
	// same identifier and type collapse regardless of surface text or article
	first := ParseAnnotation("123", rawAnnotation("Species", "9606", "human"))
	second := ParseAnnotation("456", rawAnnotation("Species", "9606", "patients"))

	assert.Equal(t, first.ID, second.ID)
}

func TestAnnotation_IsValid(t *testing.T) {
	assert.False(t, ParseAnnotation("123", rawAnnotation("Disease", "", "x")).IsValid())
	assert.False(t, ParseAnnotation("123", rawAnnotation("Disease", "-", "x")).IsValid())
	assert.False(t, ParseAnnotation("123", rawAnnotation("", "MESH:D011024", "x")).IsValid())
	assert.True(t, ParseAnnotation("123", rawAnnotation("Disease", "MESH:D011024", "x")).IsValid())
}

func TestReference_IsValid(t *testing.T) {
	assert.True(t, Reference{PubMedID: "9"}.IsValid())
	assert.True(t, Reference{DOI: "10.1/x"}.IsValid())
	assert.True(t, Reference{PubMedID: "9", DOI: "10.1/x"}.IsValid())
	assert.False(t, Reference{Title: "Untraceable citation"}.IsValid())
}

func TestReference_Article(t *testing.T) {
	ref := Reference{
		ParentPubMedID: "123",
		PubMedID:       "456",
		DOI:            "10.1/x",
		Title:          "Cited work",
	}

	stub := ref.Article()
	assert.Equal(t, "456", stub.PubMedID)
	assert.Equal(t, "10.1/x", stub.DOI)
	assert.Equal(t, "Cited work", stub.Title)
	assert.Equal(t, []string{ArticleLabel}, stub.Labels)
}
