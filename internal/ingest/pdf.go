package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/foerderfunke/shaclgen/internal/log"
)

// extractPDFText pulls the plain text out of a PDF, page by page. Pages
// whose text cannot be extracted are skipped rather than failing the whole
// document.
func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	var pages []string
	skipped := 0

	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			skipped++
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no extractable text in %s", path)
	}
	if skipped > 0 {
		log.Warn(log.CatIngest, "pdf pages skipped", "path", path, "skipped", skipped)
	}

	log.Debug(log.CatIngest, "pdf extracted", "path", path, "pages", len(pages))
	return strings.Join(pages, "\n\n"), nil
}
