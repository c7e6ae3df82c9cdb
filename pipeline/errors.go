package pipeline

import "fmt"

// Diagnostic annotation codes carried on Token.Err (spec.md §6).
const (
	ErrStraightQuoteCorrected = 1
	ErrPunctuationFixed       = 2
	ErrMissingSpaceAfterStop  = 3
	ErrWronglyJoinedCompound  = 4
	ErrWronglySplitCompound   = 5
	ErrOrdinalSpellingFixed   = 6
)

// CompoundError flattens and concatenates a set of error-code lists,
// preserving order. It replaces the source tokenizer's nested-list
// flatten helper (compound_error) with an explicit append-all routine.
func CompoundError(lists ...[]int) []int {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	if n == 0 {
		return nil
	}
	out := make([]int, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// PipelineError is a hard failure from an underlying resource (lexicon
// open, entity DB query). It terminates the pipeline; diagnostic
// annotations on tokens are a separate, non-fatal channel.
type PipelineError struct {
	Phase string // the stage that failed, e.g. "annotate", "recognize_entities"
	Cause error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("toknun: %s: %v", e.Phase, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }

// NewPipelineError wraps cause with phase context. Returns nil if cause
// is nil, so callers can write `return NewPipelineError(phase, err)`
// unconditionally.
func NewPipelineError(phase string, cause error) error {
	if cause == nil {
		return nil
	}
	return &PipelineError{Phase: phase, Cause: cause}
}
