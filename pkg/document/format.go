package document

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartgrid/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything other
// than .json is read as TOML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// FormatFromContentType picks the format from an HTTP content type.
func FormatFromContentType(ct string) Format {
	if strings.Contains(strings.ToLower(ct), "json") {
		return FormatJSON
	}
	return FormatTOML
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
		}
	case FormatTOML, "":
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, []byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}
