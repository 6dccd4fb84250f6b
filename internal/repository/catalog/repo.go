// Package catalog reads index definitions and product data files.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kailas-cloud/prodsearch/internal/domain/document"
)

// Files locates the index definition and data files.
type Files struct {
	Settings string
	Mappings string
	Data     string
}

// Repo implements usecase/indexing.Source over local files.
type Repo struct {
	files Files
}

// New creates a file-backed catalog.
func New(files Files) *Repo {
	return &Repo{files: files}
}

// IndexBody returns the create-index body {"settings": ..., "mappings": ...}.
func (r *Repo) IndexBody() ([]byte, error) {
	settings, err := readJSONObject(r.files.Settings)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	mappings, err := readJSONObject(r.files.Mappings)
	if err != nil {
		return nil, fmt.Errorf("read mappings: %w", err)
	}

	body := struct {
		Settings json.RawMessage `json:"settings"`
		Mappings json.RawMessage `json:"mappings"`
	}{Settings: settings, Mappings: mappings}
	return json.Marshal(body)
}

// Documents reads the product data file.
func (r *Repo) Documents() ([]*document.Document, error) {
	f, err := os.Open(r.files.Data)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	docs, err := DecodeDocuments(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.files.Data, err)
	}
	return docs, nil
}

// DecodeDocuments streams a JSON array of objects into documents.
func DecodeDocuments(rd io.Reader) ([]*document.Document, error) {
	dec := json.NewDecoder(rd)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, errors.New("expected a JSON array of documents")
	}

	var docs []*document.Document
	for i := 0; dec.More(); i++ {
		doc := document.New()
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs = append(docs, doc)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return docs, nil
}

func readJSONObject(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) || len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%s: expected a JSON object", path)
	}
	return data, nil
}
