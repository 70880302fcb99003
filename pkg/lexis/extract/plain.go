package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Plain reads UTF-8 text files as-is.
type Plain struct{}

// Extract implements Extractor.
func (p *Plain) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", internalerr.ErrExtractFailed, path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: %s", internalerr.ErrNoText, path)
	}
	return text, nil
}
