// Package context is a set of shorter names for the standard library context
// types and constructors.
package context

import (
	"context"
)

type (
	T = context.Context
	F = context.CancelFunc
	C = context.CancelCauseFunc
)

var (
	Bg          = context.Background
	Cancel      = context.WithCancel
	Timeout     = context.WithTimeout
	TODO        = context.TODO
	Value       = context.WithValue
	CancelCause = context.WithCancelCause
	Cause       = context.Cause
	Canceled    = context.Canceled
)
