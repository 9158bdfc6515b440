package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// WkhtmltopdfConverter pipes HTML through an external wkhtmltopdf binary
type WkhtmltopdfConverter struct {
	path string
}

// NewWkhtmltopdfConverter creates a converter using the binary at path
func NewWkhtmltopdfConverter(path string) *WkhtmltopdfConverter {
	if path == "" {
		path = "wkhtmltopdf"
	}
	return &WkhtmltopdfConverter{path: path}
}

// Convert runs the binary with HTML on stdin and reads the PDF from stdout.
// The process is killed when ctx expires.
func (c *WkhtmltopdfConverter) Convert(ctx context.Context, doc []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.path,
		"--quiet",
		"--page-size", "A4",
		"--encoding", "utf-8",
		"-", "-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(doc)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("wkhtmltopdf: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
