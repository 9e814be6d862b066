package generator

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SegmentKind classifies a diff segment.
type SegmentKind int

const (
	// SegmentUnchanged is text present in both versions.
	SegmentUnchanged SegmentKind = iota
	// SegmentAdded is text only in the new version.
	SegmentAdded
	// SegmentDeleted is text only in the old version.
	SegmentDeleted
)

// Segment is one run of a word-level diff between two Turtle documents.
type Segment struct {
	Kind SegmentKind
	Text string
}

// tokenDelimiter separates tokens before diffing so that edits align on
// word boundaries instead of characters.
const tokenDelimiter = "\x00"

// tokenize splits text into words, whitespace runs, and punctuation.
// "ff:buergergeld." yields ["ff", ":", "buergergeld", "."].
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// WordDiff computes a word-level diff between two Turtle documents.
// Segments come back in document order and concatenating the unchanged
// plus deleted segments reproduces the old document.
func WordDiff(oldText, newText string) []Segment {
	if oldText == newText {
		if oldText == "" {
			return nil
		}
		return []Segment{{Kind: SegmentUnchanged, Text: oldText}}
	}
	if oldText == "" {
		return []Segment{{Kind: SegmentAdded, Text: newText}}
	}
	if newText == "" {
		return []Segment{{Kind: SegmentDeleted, Text: oldText}}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(
		strings.Join(tokenize(oldText), tokenDelimiter),
		strings.Join(tokenize(newText), tokenDelimiter),
		false,
	)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var segments []Segment
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, tokenDelimiter, "")
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			segments = append(segments, Segment{Kind: SegmentUnchanged, Text: text})
		case diffmatchpatch.DiffDelete:
			segments = append(segments, Segment{Kind: SegmentDeleted, Text: text})
		case diffmatchpatch.DiffInsert:
			segments = append(segments, Segment{Kind: SegmentAdded, Text: text})
		}
	}
	return segments
}

// FormatDiff renders segments with inline markers, deletions as [-text-]
// and additions as {+text+}.
func FormatDiff(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		switch s.Kind {
		case SegmentDeleted:
			b.WriteString("[-" + s.Text + "-]")
		case SegmentAdded:
			b.WriteString("{+" + s.Text + "+}")
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
