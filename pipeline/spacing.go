package pipeline

import "strings"

// Punctuation sets used to classify surface text for spacing purposes
// (spec.md §4.1 / §6). Hyphens and the composite-hyphen marker are
// folded to the canonical glyphs by parse_tokens before this runs.
const (
	leftPunctuation   = "([„‚«#$€<°"
	rightPunctuation  = ".,:;)]!%?“»”’‛‘…>–"
	centerPunctuation = "\"*&+=@©|—"
	nonePunctuation   = "-/'~‘\\"
)

// spacingMatrix implements the 5x5 TP_SPACE table (spec.md §6). Rows are
// indexed by the previous token's class, columns by the next token's
// class; both 0-indexed as Left, Center, Right, None, Word.
var spacingMatrix = [5][5]bool{
	// next:   L      C      R      N      W
	/*L*/ {false, true, false, false, false},
	/*C*/ {true, true, true, true, true},
	/*R*/ {true, true, false, false, true},
	/*N*/ {false, true, false, false, false},
	/*W*/ {true, true, false, false, true},
}

func classIndex(c SpacingClass) int {
	switch c {
	case SpacingLeft:
		return 0
	case SpacingCenter:
		return 1
	case SpacingRight:
		return 2
	case SpacingNone:
		return 3
	default:
		return 4
	}
}

// NeedsSpace reports whether a space should be inserted between a token
// classified as prev and one classified as next, per the spacing matrix.
func NeedsSpace(prev, next SpacingClass) bool {
	return spacingMatrix[classIndex(prev)][classIndex(next)]
}

// ClassifyPunctuation returns the spacing class for a punctuation
// surface string. Multi-rune strings (word-like tokens) are SpacingWord.
func ClassifyPunctuation(txt string) SpacingClass {
	if len([]rune(txt)) > 1 {
		return SpacingWord
	}
	switch {
	case strings.Contains(leftPunctuation, txt):
		return SpacingLeft
	case strings.Contains(rightPunctuation, txt):
		return SpacingRight
	case strings.Contains(nonePunctuation, txt):
		return SpacingNone
	case strings.Contains(centerPunctuation, txt):
		return SpacingCenter
	default:
		return SpacingWord
	}
}

// Canonicalize re-renders a token stream as text with correct spacing,
// applying the TP_SPACE matrix token by token (the Go rendering of the
// source tokenizer's correct_spaces helper). This is the internal
// spacing algorithm, distinct from the external-consumer serialization
// format spec.md marks out of scope.
func Canonicalize(tokens []Token) string {
	var b strings.Builder
	last := SpacingNone
	first := true
	for _, t := range tokens {
		if t.Txt == "" {
			continue
		}
		var class SpacingClass
		if t.Kind == PUNCTUATION {
			class = t.Spacing
		} else {
			class = SpacingWord
		}
		if !first && NeedsSpace(last, class) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Txt)
		last = class
		first = false
	}
	return b.String()
}
