package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// PDF extracts plain text from PDF files page by page. Pages that fail to
// decode are skipped; the document only fails when nothing at all could be
// read.
type PDF struct{}

// Extract implements Extractor.
func (p *PDF) Extract(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", internalerr.ErrExtractFailed, path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: %s may be scanned or image-based", internalerr.ErrNoText, path)
	}
	return text, nil
}
