// Package render turns per-page image instructions into page artifacts on
// disk, fanning the work out over a bounded pool.
//
// Unlike the description stage, a failed page here does not abort the run:
// the failure is recorded in the page's Result and the remaining pages keep
// rendering. The assembler decides what a partial set means.
package render

// Instruction is one page's fully-expanded image prompt, ready to send.
// Built by the promptgen package; this stage treats Text as opaque.
type Instruction struct {
	Index int    // 1-based page index
	Text  string // Final prompt text
}

// Result is the outcome of rendering one page. Exactly one of ArtifactPath
// or Err is meaningful.
type Result struct {
	Index        int    // 1-based page index
	ArtifactPath string // Absolute path of the written PNG; empty on failure
	Err          error  // Wrapped core.RenderError on failure; nil on success
}

// Succeeded reports whether the page produced an artifact.
func (r Result) Succeeded() bool {
	return r.Err == nil && r.ArtifactPath != ""
}
