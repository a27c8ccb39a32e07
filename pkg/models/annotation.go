package models

import (
	"strings"

	"github.com/Ramsey-B/laurel/pkg/bioc"
	"github.com/Ramsey-B/laurel/pkg/fingerprint"
)

// Label applied to every annotation node.
const AnnotationLabel = "Annotation"

// Annotation is one concept mention extracted from passage text: a type
// (Gene, Disease, Chemical, ...), a canonical identifier, and the surface
// text it was found as.
type Annotation struct {
	ID         int64
	PubMedID   string
	Type       string
	Identifier string
	Text       string
}

// ParseAnnotation builds an annotation from a BioC passage annotation. The
// id is derived from identifier and type only, so the same concept mentioned
// in several passages collapses to one node.
func ParseAnnotation(pubmedID string, raw bioc.Annotation) Annotation {
	annType, _ := raw.Infon("type")
	identifier, _ := raw.Infon("identifier")

	return Annotation{
		ID:         fingerprint.ID("annotation", identifier, annType),
		PubMedID:   pubmedID,
		Type:       strings.TrimSpace(annType),
		Identifier: strings.TrimSpace(identifier),
		Text:       raw.Text,
	}
}

// IsValid reports whether the annotation has a resolvable concept behind it.
func (a Annotation) IsValid() bool {
	return a.Identifier != "" && a.Identifier != "-" && a.Type != ""
}

// Labels returns the node labels for the annotation: the generic label plus
// the annotation type as a categorizing label.
func (a Annotation) Labels() []string {
	labels := []string{AnnotationLabel}
	if a.Type != "" {
		labels = append(labels, a.Type)
	}
	return labels
}

// Properties returns the node property map for the annotation.
func (a Annotation) Properties() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"type":       a.Type,
		"identifier": a.Identifier,
		"text":       a.Text,
	}
}
