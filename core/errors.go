package core

import (
	"errors"
	"fmt"
)

// The pipeline error taxonomy. Each stage raises exactly one of these types,
// and the orchestrator uses them to decide whether a failure aborts the run:
//
//   - OutlineParseError: fatal, before any page work starts
//   - DescriptionError: one page's description failed; fatal to the run
//   - RenderError: one page's image failed; recorded as a hole, run proceeds
//   - EmptyArtifactSetError: zero pages rendered; fatal at the assembly step

// OutlineParseError indicates the generator's outline reply was not valid
// JSON or matched neither of the two accepted outline shapes.
type OutlineParseError struct {
	Reply string // Truncated preview of the (fence-stripped) reply
	Cause error
}

func (e *OutlineParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("outline reply could not be parsed: %v (reply preview: %q)", e.Cause, e.Reply)
	}
	return fmt.Sprintf("outline reply could not be parsed (reply preview: %q)", e.Reply)
}

func (e *OutlineParseError) Unwrap() error { return e.Cause }

// NewOutlineParseError builds an OutlineParseError, keeping only a short
// preview of the reply so logs stay readable.
func NewOutlineParseError(reply string, cause error) *OutlineParseError {
	return &OutlineParseError{
		Reply: TruncateText(reply, 120),
		Cause: cause,
	}
}

// DescriptionError indicates a single page's description generation failed.
// Policy: fatal to the whole run (the run aborts before prompt building).
type DescriptionError struct {
	Index int    // 1-based page index
	Title string // Page title, for the run summary
	Cause error
}

func (e *DescriptionError) Error() string {
	return fmt.Sprintf("description for page %d (%s) failed: %v", e.Index, e.Title, e.Cause)
}

func (e *DescriptionError) Unwrap() error { return e.Cause }

// RenderError indicates a single page's image generation failed.
// Policy: non-fatal; the page is recorded as a hole and siblings continue.
type RenderError struct {
	Index int // 1-based page index
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render for page %d failed: %v", e.Index, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// EmptyArtifactSetError indicates a run finished rendering with zero page
// artifacts. Raised by the assembler only; earlier stages never treat an
// all-failed render pass as an error themselves.
type EmptyArtifactSetError struct {
	Dir string // Run output directory that was scanned
}

func (e *EmptyArtifactSetError) Error() string {
	return fmt.Sprintf("no page artifacts found in %s; nothing to package", e.Dir)
}

// AsOutlineParseError reports whether err is (or wraps) an OutlineParseError.
func AsOutlineParseError(err error) (*OutlineParseError, bool) {
	var target *OutlineParseError
	ok := errors.As(err, &target)
	return target, ok
}

// AsDescriptionError reports whether err is (or wraps) a DescriptionError.
func AsDescriptionError(err error) (*DescriptionError, bool) {
	var target *DescriptionError
	ok := errors.As(err, &target)
	return target, ok
}

// AsEmptyArtifactSetError reports whether err is (or wraps) an
// EmptyArtifactSetError.
func AsEmptyArtifactSetError(err error) (*EmptyArtifactSetError, bool) {
	var target *EmptyArtifactSetError
	ok := errors.As(err, &target)
	return target, ok
}
