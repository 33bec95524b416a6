// Package scan holds the strict JSON value accessors shared by the event,
// filter and envelope decoders. Values are located with tidwall/gjson; each
// accessor checks that the JSON type is exactly the one expected rather than
// coercing it the way gjson's own accessors do.
package scan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")
)

// Parse validates b as a single JSON value and returns it.
func Parse(b []byte) (r gjson.Result, err error) {
	if !gjson.ValidBytes(b) {
		err = ErrInvalidJSON
		return
	}
	r = gjson.ParseBytes(b)
	return
}

// TypeName describes the JSON type of r for error messages.
func TypeName(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.Type == gjson.Null:
		return "null"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "boolean"
	case r.Type == gjson.Number:
		return "number"
	case r.Type == gjson.String:
		return "string"
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	}
	return "unknown"
}

func mismatch(want string, r gjson.Result) error {
	return fmt.Errorf("expected %s, got %s", want, TypeName(r))
}

// String returns the unescaped string value of r, which must be valid UTF-8.
func String(r gjson.Result) (s string, err error) {
	if r.Type != gjson.String {
		err = mismatch("string", r)
		return
	}
	if !utf8.ValidString(r.Str) {
		err = ErrInvalidUTF8
		return
	}
	return r.Str, nil
}

// Bool returns the value of a JSON true or false.
func Bool(r gjson.Result) (b bool, err error) {
	switch r.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	}
	err = mismatch("boolean", r)
	return
}

// Int64 returns an integer value. Fractions and exponents are rejected rather
// than truncated.
func Int64(r gjson.Result) (i int64, err error) {
	if r.Type != gjson.Number {
		err = mismatch("integer", r)
		return
	}
	if strings.ContainsAny(r.Raw, ".eE") {
		err = fmt.Errorf("expected integer, got %s", r.Raw)
		return
	}
	if i, err = strconv.ParseInt(r.Raw, 10, 64); err != nil {
		err = fmt.Errorf("integer out of range: %s", r.Raw)
	}
	return
}

// Uint returns a non-negative integer no larger than max.
func Uint(r gjson.Result, max uint64) (u uint64, err error) {
	var i int64
	if i, err = Int64(r); err != nil {
		return
	}
	if i < 0 || uint64(i) > max {
		err = fmt.Errorf("integer %d out of range 0-%d", i, max)
		return
	}
	return uint64(i), nil
}

// Array returns the elements of a JSON array.
func Array(r gjson.Result) (a []gjson.Result, err error) {
	if !r.IsArray() {
		err = mismatch("array", r)
		return
	}
	return r.Array(), nil
}

// Object checks that r is a JSON object.
func Object(r gjson.Result) (err error) {
	if !r.IsObject() {
		err = mismatch("object", r)
	}
	return
}

// Strings returns an array whose elements must all be strings.
func Strings(r gjson.Result) (ss []string, err error) {
	var a []gjson.Result
	if a, err = Array(r); err != nil {
		return
	}
	ss = make([]string, len(a))
	for i := range a {
		if ss[i], err = String(a[i]); err != nil {
			err = fmt.Errorf("element %d: %w", i, err)
			return nil, err
		}
	}
	return
}
