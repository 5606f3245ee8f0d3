package diagram

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archview/pkg/errors"
)

// Format is a source encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the decoder from the file extension. Anything that is
// not .json is read as YAML, which also accepts JSON documents.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses data in the given format. Both elements and relations may be
// omitted from a source file; they decode as empty lists.
func Decode(data []byte, format Format) (*Document, error) {
	doc := &Document{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSourceRead, err, "invalid JSON document")
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, errors.New(errors.ErrCodeSourceRead, "document is empty")
		}
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSourceRead, err, "invalid YAML document")
		}
	}
	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	if doc.Relations == nil {
		doc.Relations = []Relation{}
	}
	return doc, nil
}

// ReadFile reads and decodes a diagram source file.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceRead, err, "failed to read %s", path)
	}
	doc, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceRead, err, "failed to decode %s", path)
	}
	return doc, nil
}

// Clone returns a deep copy of d via its JSON encoding.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := &Document{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
