package decoder

import (
	"encoding/json"
	"fmt"
	"io"

	stderrors "errors"

	"github.com/mcncl/jsv/internal/errors"
	"github.com/mcncl/jsv/internal/models"
)

// Sequence is a pull-based stream of top-level JSON values. Next returns the
// next value, or (nil, io.EOF) once the stream is cleanly exhausted. Any
// other error is fatal: the sequence must not be pulled again after one.
type Sequence interface {
	Next() (models.JSONValue, error)
}

// NewSingle parses the entire stream as exactly one JSON document, requires
// it to be an array, and returns a Sequence over its elements in order.
// The whole document is held in memory, so this mode is O(input size).
func NewSingle(reader io.Reader) (Sequence, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber() // Ensure numbers keep their original decimal text

	var root models.JSONValue
	if err := dec.Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, parseError(err)
	}

	// Anything but whitespace after the document is an error. More() catches
	// a second value, the extra Decode catches stray bytes like ']' which
	// More() does not report.
	if dec.More() {
		return nil, errors.NewParseError("trailing data after the JSON document", errors.ErrTrailingData)
	}
	var trailing models.JSONValue
	if err := dec.Decode(&trailing); !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParseError("trailing data after the JSON document", errors.ErrTrailingData)
	}

	arr, ok := normalizeJSONValue(root).(models.JSONArray)
	if !ok {
		return nil, errors.NewShapeError("root object is not an array", errors.ErrRootNotArray)
	}
	return &arraySequence{elements: arr}, nil
}

// NewConcatenated returns a Sequence over a stream of independent JSON
// documents with no enclosing array, each decoded as it is pulled.
// Memory use is bounded by the largest single document.
func NewConcatenated(reader io.Reader) Sequence {
	dec := json.NewDecoder(reader)
	dec.UseNumber()
	return &streamSequence{dec: dec}
}

// arraySequence iterates the elements of an already-decoded array.
type arraySequence struct {
	elements models.JSONArray
	next     int
}

func (s *arraySequence) Next() (models.JSONValue, error) {
	if s.next >= len(s.elements) {
		return nil, io.EOF
	}
	v := s.elements[s.next]
	s.next++
	return v, nil
}

// streamSequence decodes one document per pull from the underlying reader.
type streamSequence struct {
	dec *json.Decoder
}

func (s *streamSequence) Next() (models.JSONValue, error) {
	var v models.JSONValue
	if err := s.dec.Decode(&v); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, parseError(err)
	}
	return normalizeJSONValue(v), nil
}

// parseError wraps a json decoding failure with position context when the
// decoder provides it
func parseError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParseError(
			fmt.Sprintf("JSON syntax error at offset %d: %v", syntaxError.Offset, syntaxError),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParseError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParseError("failed to decode JSON", err)
}

// normalizeJSONValue converts raw decoded types into our model types
func normalizeJSONValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}
