package fntpack

import (
	"errors"
	"fmt"

	"github.com/rashevskyv/bffnt-tools/fnt"
)

// ErrMissingBase is reported when a repack is requested without any usable
// original container bytes: the model carries no embedded copy (or opted
// out of it) and no external base buffer was supplied. No output is
// written in that case.
var ErrMissingBase = errors.New("repack: no usable original container bytes")

// CapacityError is reported when the edited model implies adding or
// removing chain entries, which in-place patching cannot express. The
// repack is aborted before any byte is written.
type CapacityError struct {
	Chain  fnt.Tag // CWDH or CMAP
	Detail string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("repack: %s chain capacity: %s", e.Chain, e.Detail)
}

// Warning is a non-fatal repack issue, e.g. a Direct mapping block that
// cannot express the model's edits, or a verification mismatch.
type Warning struct {
	Sheet int // -1 when not sheet-related
	Issue string
}

func (w Warning) String() string {
	if w.Sheet >= 0 {
		return fmt.Sprintf("[WARNING] sheet %d: %s", w.Sheet, w.Issue)
	}
	return "[WARNING] " + w.Issue
}
