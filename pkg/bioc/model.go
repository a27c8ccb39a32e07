// Package bioc models the BioC standoff-annotation XML format and provides
// a streaming supplier that yields one document at a time from a collection
// file without holding the whole collection in memory.
package bioc

import "encoding/xml"

// Collection is the top-level BioC element. Only used when decoding a whole
// file at once; the streaming supplier skips straight to document elements.
type Collection struct {
	XMLName   xml.Name   `xml:"collection"`
	Source    string     `xml:"source"`
	Date      string     `xml:"date"`
	Key       string     `xml:"key"`
	Infons    []Infon    `xml:"infon"`
	Documents []Document `xml:"document"`
}

// Document is a single BioC document: an id, document-level infons and an
// ordered list of passages.
type Document struct {
	ID       string    `xml:"id"`
	Infons   []Infon   `xml:"infon"`
	Passages []Passage `xml:"passage"`
}

// Passage is a contiguous span of document text with its own infons,
// annotations and optional sentence breakdown.
type Passage struct {
	Infons      []Infon      `xml:"infon"`
	Offset      int          `xml:"offset"`
	Text        string       `xml:"text"`
	Sentences   []Sentence   `xml:"sentence"`
	Annotations []Annotation `xml:"annotation"`
	Relations   []Relation   `xml:"relation"`
}

// Sentence is a sub-span of a passage. Carried for completeness; the loader
// works at passage granularity.
type Sentence struct {
	Infons      []Infon      `xml:"infon"`
	Offset      int          `xml:"offset"`
	Text        string       `xml:"text"`
	Annotations []Annotation `xml:"annotation"`
	Relations   []Relation   `xml:"relation"`
}

// Annotation is a standoff annotation over passage text. The infons carry
// the annotation type and its canonical identifier.
type Annotation struct {
	ID        string     `xml:"id,attr"`
	Infons    []Infon    `xml:"infon"`
	Locations []Location `xml:"location"`
	Text      string     `xml:"text"`
}

// Location is a byte span within the document text.
type Location struct {
	Offset int `xml:"offset,attr"`
	Length int `xml:"length,attr"`
}

// Relation links annotations together by id.
type Relation struct {
	ID     string  `xml:"id,attr"`
	Infons []Infon `xml:"infon"`
	Nodes  []Node  `xml:"node"`
}

// Node is a single endpoint of a relation.
type Node struct {
	RefID string `xml:"refid,attr"`
	Role  string `xml:"role,attr"`
}

// Infon is a key/value metadata entry. BioC keeps these as repeated elements
// rather than attributes, with the key as an attribute and the value as text.
type Infon struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Infon returns the value for key and whether it was present.
func (d *Document) Infon(key string) (string, bool) {
	return lookup(d.Infons, key)
}

// Infon returns the value for key and whether it was present.
func (p *Passage) Infon(key string) (string, bool) {
	return lookup(p.Infons, key)
}

// InfonOrDefault returns the value for key, or def when the key is absent.
func (p *Passage) InfonOrDefault(key, def string) string {
	if v, ok := lookup(p.Infons, key); ok {
		return v
	}
	return def
}

// HasInfon reports whether the passage carries the given key.
func (p *Passage) HasInfon(key string) bool {
	_, ok := lookup(p.Infons, key)
	return ok
}

// PutInfon sets key to value, replacing an existing entry for the same key.
func (p *Passage) PutInfon(key, value string) {
	for i := range p.Infons {
		if p.Infons[i].Key == key {
			p.Infons[i].Value = value
			return
		}
	}
	p.Infons = append(p.Infons, Infon{Key: key, Value: value})
}

// Infon returns the value for key and whether it was present.
func (a *Annotation) Infon(key string) (string, bool) {
	return lookup(a.Infons, key)
}

// InfonOrDefault returns the value for key, or def when the key is absent.
func (a *Annotation) InfonOrDefault(key, def string) string {
	if v, ok := lookup(a.Infons, key); ok {
		return v
	}
	return def
}

func lookup(infons []Infon, key string) (string, bool) {
	for _, in := range infons {
		if in.Key == key {
			return in.Value, true
		}
	}
	return "", false
}
