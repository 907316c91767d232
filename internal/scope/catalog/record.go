package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dsjohal14/catalogsearch/internal/scope/search"
)

// ID is a product identifier that decodes from a JSON string or number
type ID string

// UnmarshalJSON accepts "abc", 42 and null
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Record is the wire and on-disk form of a catalog product
type Record struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	HasImage    bool   `json:"has_image,omitempty"`
}

// Document projects the record onto its searchable fields.
// A record has an image when it says so or carries an image URL.
func (r Record) Document() search.Document {
	return search.Document{
		ID:          string(r.ID),
		Name:        r.Name,
		Brand:       r.Brand,
		Category:    r.Category,
		Description: r.Description,
		HasImage:    r.HasImage || strings.TrimSpace(r.ImageURL) != "",
	}
}

// RecordFromDocument is the inverse of Record.Document, minus the image URL
func RecordFromDocument(doc search.Document) Record {
	return Record{
		ID:          ID(doc.ID),
		Name:        doc.Name,
		Brand:       doc.Brand,
		Category:    doc.Category,
		Description: doc.Description,
		HasImage:    doc.HasImage,
	}
}

// DecodeDocuments reads records from r, either as a JSON array or as a
// stream of objects (JSONL)
func DecodeDocuments(r io.Reader) ([]search.Document, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return []search.Document{}, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	docs := make([]search.Document, 0)

	if first == '[' {
		var records []Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode records: %w", err)
		}
		for _, rec := range records {
			docs = append(docs, rec.Document())
		}
		return docs, nil
	}

	for i := 0; ; i++ {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		docs = append(docs, rec.Document())
	}
	return docs, nil
}

// EncodeDocuments writes docs to w as JSONL
func EncodeDocuments(w io.Writer, docs []search.Document) error {
	encoder := json.NewEncoder(w)
	for i := range docs {
		if err := encoder.Encode(RecordFromDocument(docs[i])); err != nil {
			return fmt.Errorf("failed to encode document %d: %w", i, err)
		}
	}
	return nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
