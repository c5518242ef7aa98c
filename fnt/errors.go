package fnt

import "fmt"

// FormatError is an unrecoverable structural problem in a container:
// unknown signature, truncated section, malformed or cyclic chain.
// It aborts processing of the one container it occurred in; callers
// processing batches are expected to continue with sibling containers.
type FormatError struct {
	Section Tag    // section the error occurred in (zero for the header)
	Offset  int    // byte offset in the container, -1 if unknown
	Issue   string // human-readable description
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	section := "header"
	if e.Section != 0 {
		section = e.Section.String()
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("font container format: %s at offset 0x%X: %s", section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("font container format: %s: %s", section, e.Issue)
}

// errFormat produces a FormatError for a section at a byte offset.
func errFormat(section Tag, offset int, format string, args ...any) *FormatError {
	return &FormatError{
		Section: section,
		Offset:  offset,
		Issue:   fmt.Sprintf(format, args...),
	}
}

// Warning is a non-fatal issue found during parsing, e.g. a CMAP block
// with an unknown mapping method. Warnings accumulate on the Container
// and can be inspected after Parse returns.
type Warning struct {
	Section Tag
	Offset  int
	Issue   string
}

// String returns a human-readable representation of the warning.
func (w Warning) String() string {
	if w.Offset >= 0 {
		return fmt.Sprintf("[WARNING] %s at offset 0x%X: %s", w.Section, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Section, w.Issue)
}

// warningCollector accumulates warnings during container parsing.
type warningCollector struct {
	warnings []Warning
}

func (wc *warningCollector) addWarning(section Tag, offset int, issue string) {
	wc.warnings = append(wc.warnings, Warning{Section: section, Offset: offset, Issue: issue})
}
