package ingest

import (
	"regexp"
	"strings"
)

// Section is one statute section ("§") of a legal text. Ref is the section
// number as written in the source, including suffix letters ("7", "7a").
type Section struct {
	Ref  string
	Text string
}

// sectionPattern matches German statute section headings at the start of a
// line, e.g. "§ 7 Leistungsberechtigte" or "§7a Auszubildende".
var sectionPattern = regexp.MustCompile(`(?m)^§\s*(\d+[a-z]?)\b`)

// SplitSections splits a legal text at statute section headings. Text
// before the first heading (title, preamble) becomes a section with an
// empty Ref. Texts without headings come back as a single section.
func SplitSections(text string) []Section {
	matches := sectionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []Section{{Text: trimmed}}
	}

	var sections []Section

	if preamble := strings.TrimSpace(text[:matches[0][0]]); preamble != "" {
		sections = append(sections, Section{Text: preamble})
	}

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[0]:end])
		if body == "" {
			continue
		}
		sections = append(sections, Section{
			Ref:  text[m[2]:m[3]],
			Text: body,
		})
	}
	return sections
}

// subsectionPattern matches "(1)", "(2a)" style subsection markers at the
// start of a line.
var subsectionPattern = regexp.MustCompile(`(?m)^\((\d+[a-z]?)\)`)

// SplitSubsections splits one section's text at its "(n)" subsection
// markers. The heading line before the first marker stays with the first
// returned part.
func SplitSubsections(text string) []string {
	matches := subsectionPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}

	var parts []string
	if head := strings.TrimSpace(text[:matches[0][0]]); head != "" {
		parts = append(parts, head)
	}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if part := strings.TrimSpace(text[m[0]:end]); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
