package projector

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsv/internal/config"
	"github.com/mcncl/jsv/internal/decoder"
	"github.com/mcncl/jsv/internal/errors"
	"github.com/mcncl/jsv/internal/models"
)

// WriteHeader writes the header line: the configured columns' display names
// joined by the separator. No-op when headers are disabled.
func WriteHeader(cfg *config.Config, w io.Writer) error {
	if !cfg.ShowHeaders {
		return nil
	}
	last := len(cfg.Columns) - 1
	for i, col := range cfg.Columns {
		if _, err := io.WriteString(w, cfg.DisplayName(col)); err != nil {
			return err
		}
		if i != last {
			if _, err := io.WriteString(w, cfg.Separator); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteRow renders one record as a delimited line. The value must be a JSON
// object; each configured column is looked up by name and serialized per its
// JSON type. Fields are written as they are produced, so a failure partway
// through leaves a partial line behind.
func WriteRow(value models.JSONValue, cfg *config.Config, w io.Writer) error {
	object, ok := value.(models.JSONObject)
	if !ok {
		return errors.NewRecordError(fmt.Sprintf("invalid json object: %s", preview(value)), nil)
	}
	last := len(cfg.Columns) - 1
	for i, col := range cfg.Columns {
		// A missing field decodes to nil, same as an explicit null
		if err := writeField(object[col], col, cfg, w); err != nil {
			return err
		}
		if i != last {
			if _, err := io.WriteString(w, cfg.Separator); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Convert writes the header and then one line per value pulled from the
// sequence, until clean end of stream or the first error. Returns the number
// of record lines written.
func Convert(seq decoder.Sequence, cfg *config.Config, w io.Writer) (int, error) {
	if err := WriteHeader(cfg, w); err != nil {
		return 0, errors.NewOutputError("failed to write header", err)
	}
	count := 0
	for {
		value, err := seq.Next()
		if stderrors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if err := WriteRow(value, cfg, w); err != nil {
			return count, err
		}
		count++
	}
}

func writeField(value models.JSONValue, col string, cfg *config.Config, w io.Writer) error {
	switch v := value.(type) {
	case nil:
		// Null renders as an empty field
		return nil
	case string:
		if cfg.Raw {
			// Verbatim bytes: embedded separators or quotes are the
			// caller's problem in raw mode
			_, err := io.WriteString(w, v)
			return err
		}
		// CSV-style quoting: wrap in double quotes, double any embedded
		// quote. Separators and newlines inside the string are not escaped.
		_, err := io.WriteString(w, `"`+strings.ReplaceAll(v, `"`, `""`)+`"`)
		return err
	case bool:
		_, err := fmt.Fprintf(w, "%t", v)
		return err
	case json.Number:
		_, err := io.WriteString(w, v.String())
		return err
	default:
		// Nested objects and arrays are not flattened
		return errors.NewColumnError(fmt.Sprintf("invalid column: %s", col), nil)
	}
}

// preview renders a value compactly for error messages
func preview(value models.JSONValue) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	if len(data) > 60 {
		data = append(data[:60], "..."...)
	}
	return string(data)
}
