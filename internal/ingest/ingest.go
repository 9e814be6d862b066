// Package ingest reads legal source documents and prepares their text for
// shape generation: plain-text and PDF extraction, length-bounded
// truncation, and segmentation along German statute sections.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foerderfunke/shaclgen/internal/log"
)

// DefaultMaxLength bounds how much text a single generation prompt carries.
const DefaultMaxLength = 30000

// truncationMarker is appended when a document was cut short.
const truncationMarker = "\n\n[Text truncated due to length...]"

// ReadDocument extracts the text of a legal source document. PDF files go
// through the PDF extractor, everything else is read as UTF-8 plain text.
func ReadDocument(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDFText(path)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		log.Debug(log.CatIngest, "document read", "path", path, "bytes", len(raw))
		return string(raw), nil
	}
}

// Truncate cuts text to at most maxLength characters, preferring to break
// at a paragraph boundary, then a line boundary, then a sentence boundary.
// Truncated text is marked so the assistant knows the document continues.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	truncated := string(runes[:maxLength])
	lastBreak := strings.LastIndex(truncated, "\n\n")
	if lastBreak == -1 {
		lastBreak = strings.LastIndex(truncated, "\n")
	}
	if lastBreak == -1 {
		lastBreak = strings.LastIndex(truncated, ". ")
	}
	if lastBreak != -1 {
		truncated = truncated[:lastBreak]
	}

	log.Debug(log.CatIngest, "document truncated",
		"chars", len(runes), "maxChars", maxLength)
	return truncated + truncationMarker
}
