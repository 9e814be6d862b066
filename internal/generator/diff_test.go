package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordDiff_Identical(t *testing.T) {
	segments := WordDiff("ff:x a sh:NodeShape .", "ff:x a sh:NodeShape .")
	require.Equal(t, []Segment{{Kind: SegmentUnchanged, Text: "ff:x a sh:NodeShape ."}}, segments)

	require.Nil(t, WordDiff("", ""))
}

func TestWordDiff_AllAddedOrDeleted(t *testing.T) {
	added := WordDiff("", "ff:x a sh:NodeShape .")
	require.Equal(t, []Segment{{Kind: SegmentAdded, Text: "ff:x a sh:NodeShape ."}}, added)

	deleted := WordDiff("ff:x a sh:NodeShape .", "")
	require.Equal(t, []Segment{{Kind: SegmentDeleted, Text: "ff:x a sh:NodeShape ."}}, deleted)
}

func TestWordDiff_WordLevelChange(t *testing.T) {
	oldText := "sh:maxCount 1 ;"
	newText := "sh:maxCount 2 ;"

	segments := WordDiff(oldText, newText)

	var deleted, added []string
	for _, s := range segments {
		switch s.Kind {
		case SegmentDeleted:
			deleted = append(deleted, s.Text)
		case SegmentAdded:
			added = append(added, s.Text)
		}
	}
	require.Equal(t, []string{"1"}, deleted)
	require.Equal(t, []string{"2"}, added)
}

func TestWordDiff_ReconstructsOldAndNew(t *testing.T) {
	oldText := "ff:buergergeldMainPersonShape a sh:NodeShape ;\n    sh:targetClass ff:Citizen ."
	newText := "ff:buergergeldMainPersonShape a sh:NodeShape, ff:EligibilityConstraint ;\n    sh:targetClass ff:Citizen ."

	segments := WordDiff(oldText, newText)

	var oldBuilt, newBuilt strings.Builder
	for _, s := range segments {
		if s.Kind != SegmentAdded {
			oldBuilt.WriteString(s.Text)
		}
		if s.Kind != SegmentDeleted {
			newBuilt.WriteString(s.Text)
		}
	}
	require.Equal(t, oldText, oldBuilt.String())
	require.Equal(t, newText, newBuilt.String())
}

func TestFormatDiff(t *testing.T) {
	segments := []Segment{
		{Kind: SegmentUnchanged, Text: "sh:maxCount "},
		{Kind: SegmentDeleted, Text: "1"},
		{Kind: SegmentAdded, Text: "2"},
		{Kind: SegmentUnchanged, Text: " ;"},
	}
	require.Equal(t, "sh:maxCount [-1-]{+2+} ;", FormatDiff(segments))
}

func TestTokenize(t *testing.T) {
	require.Nil(t, tokenize(""))
	require.Equal(t, []string{"ff", ":", "buergergeld"}, tokenize("ff:buergergeld"))
	require.Equal(t, []string{"a", " ", "sh", ":", "NodeShape", " ", "."}, tokenize("a sh:NodeShape ."))
}
