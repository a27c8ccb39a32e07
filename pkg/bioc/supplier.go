package bioc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// DocumentSupplier streams documents out of a BioC collection file one at a
// time. It walks the token stream until it finds the next document start
// element and decodes just that subtree, so arbitrarily large collections
// cost one document of memory.
//
// Next returns io.EOF once the collection is exhausted; that is the normal
// end-of-stream signal, not a failure.
type DocumentSupplier struct {
	path  string
	file  *os.File
	dec   *xml.Decoder
	count int
}

// NewDocumentSupplier opens the collection file at path and positions the
// decoder at the start of the stream. The caller owns Close.
func NewDocumentSupplier(path string) (*DocumentSupplier, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bioc collection %q: %w", path, err)
	}

	return &DocumentSupplier{
		path: path,
		file: file,
		dec:  xml.NewDecoder(file),
	}, nil
}

// Next returns the next document in the collection, or io.EOF when the
// stream is exhausted. Any other error means the file is malformed and the
// stream cannot continue.
func (s *DocumentSupplier) Next() (*Document, error) {
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("read bioc token in %q: %w", s.path, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "document" {
			continue
		}

		var doc Document
		if err := s.dec.DecodeElement(&doc, &start); err != nil {
			return nil, fmt.Errorf("decode bioc document in %q: %w", s.path, err)
		}

		s.count++
		return &doc, nil
	}
}

// Count returns how many documents have been returned so far.
func (s *DocumentSupplier) Count() int {
	return s.count
}

// Path returns the file the supplier reads from.
func (s *DocumentSupplier) Path() string {
	return s.path
}

// Close releases the underlying file.
func (s *DocumentSupplier) Close() error {
	return s.file.Close()
}
