package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// HTML extracts the visible text of an HTML document, dropping script and
// style subtrees.
type HTML struct{}

// Extract implements Extractor.
func (h *HTML) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", internalerr.ErrExtractFailed, path, err)
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", internalerr.ErrExtractFailed, path, err)
	}

	var sb strings.Builder
	collectText(doc, &sb)

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: %s", internalerr.ErrNoText, path)
	}
	return text, nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		trimmed := strings.TrimSpace(n.Data)
		if trimmed != "" {
			sb.WriteString(trimmed)
			sb.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
