// Package enveloper defines the interface shared by all message envelopes,
// the decoding errors they return, and the positional helpers they decode
// with.
package enveloper

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/text"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/wire/scan"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

// I interface for envelopes
//
// An envelope is a JSON array with its label string in position 0 and
// positional fields after it.
type I interface {
	// Label returns the string in position 0.
	Label() string
	fmt.Stringer
	// Bytes returns the wire form of the envelope.
	Bytes() []byte
	json.Marshaler
	json.Unmarshaler
	// Decode fills the envelope from the elements of a message whose label
	// has already been checked. Nothing is modified when it fails.
	Decode(elems []gjson.Result) error
}

var (
	// ErrMalformedMessage matches every *MalformedError.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrUnknownMessageKind matches every *UnknownKindError.
	ErrUnknownMessageKind = errors.New("unknown message kind")
)

// Whole is the Position of a MalformedError that concerns the message as a
// whole rather than one element.
const Whole = -1

// MalformedError reports a message that is not valid JSON, not an array, has
// the wrong number of elements, or has an element of the wrong type.
type MalformedError struct {
	Label    string
	Position int
	Reason   string
}

func (e *MalformedError) Error() string {
	if e.Position == Whole {
		return fmt.Sprintf("malformed %s message: %s", e.labelText(), e.Reason)
	}
	return fmt.Sprintf("malformed %s message at position %d: %s",
		e.labelText(), e.Position, e.Reason)
}

func (e *MalformedError) labelText() string {
	if e.Label == "" {
		return "nostr"
	}
	return e.Label
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformedMessage }

// UnknownKindError reports a well formed array whose label is not one the
// receiver understands.
type UnknownKindError struct {
	Label string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown message kind %q", e.Label)
}

func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownMessageKind }

// Malformed builds a MalformedError from an underlying decoding error.
func Malformed(label string, pos int, err error) *MalformedError {
	return &MalformedError{Label: label, Position: pos, Reason: err.Error()}
}

// Split parses a message and returns its label and all of its elements,
// label included, so that positions index the slice directly.
func Split(b []byte) (label string, elems []gjson.Result, err error) {
	var r gjson.Result
	if r, err = scan.Parse(b); err != nil {
		err = Malformed("", Whole, err)
		return
	}
	if elems, err = scan.Array(r); err != nil {
		err = Malformed("", Whole, err)
		return
	}
	if len(elems) == 0 {
		err = &MalformedError{Position: 0, Reason: "missing label"}
		return
	}
	if label, err = scan.String(elems[0]); err != nil {
		err = Malformed("", 0, err)
		return
	}
	return
}

// Unmarshal decodes b into env after checking that its label is env's.
func Unmarshal(b []byte, env I) (err error) {
	var label string
	var elems []gjson.Result
	if label, elems, err = Split(b); err != nil {
		return
	}
	if label != env.Label() {
		return &MalformedError{Label: label, Position: 0,
			Reason: fmt.Sprintf("expected label %q", env.Label())}
	}
	return env.Decode(elems)
}

// Arity checks that a message has exactly n elements, label included.
func Arity(label string, elems []gjson.Result, n int) (err error) {
	if len(elems) == n {
		return
	}
	pos := len(elems)
	if pos > n {
		pos = n
	}
	return &MalformedError{Label: label, Position: pos,
		Reason: fmt.Sprintf("expected %d elements, got %d", n, len(elems))}
}

// String returns the string at position pos.
func String(label string, elems []gjson.Result, pos int) (s string, err error) {
	if s, err = scan.String(elems[pos]); err != nil {
		err = Malformed(label, pos, err)
	}
	return
}

// Bool returns the boolean at position pos.
func Bool(label string, elems []gjson.Result, pos int) (b bool, err error) {
	if b, err = scan.Bool(elems[pos]); err != nil {
		err = Malformed(label, pos, err)
	}
	return
}

// Object checks that position pos holds an object and returns it.
func Object(label string, elems []gjson.Result, pos int) (r gjson.Result, err error) {
	if err = scan.Object(elems[pos]); err != nil {
		err = Malformed(label, pos, err)
		return
	}
	return elems[pos], nil
}

// Write renders an envelope: the opening bracket and quoted label, then
// whatever body appends (each field with its leading comma), then the
// closing bracket.
func Write(label string, body func(w *jwriter.Writer)) (b []byte) {
	w := jwriter.Writer{}
	w.RawByte('[')
	w.Raw(text.Quote(label), nil)
	if body != nil {
		body(&w)
	}
	w.RawByte(']')
	b, _ = w.BuildBytes()
	return
}

// Field writes a comma then a quoted, escaped string.
func Field(w *jwriter.Writer, s string) {
	w.RawByte(',')
	w.Raw(text.Quote(s), nil)
}
