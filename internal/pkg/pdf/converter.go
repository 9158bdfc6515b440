// Package pdf converts rendered HTML documents to PDF.
package pdf

import (
	"context"
	"fmt"
)

// Converter turns one HTML document into one PDF document
type Converter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// Engine names accepted by New
const (
	EngineNative      = "native"
	EngineWkhtmltopdf = "wkhtmltopdf"
)

// New returns the converter for engine
func New(engine, wkhtmltopdfPath string) (Converter, error) {
	switch engine {
	case EngineNative, "":
		return NewNativeConverter(), nil
	case EngineWkhtmltopdf:
		return NewWkhtmltopdfConverter(wkhtmltopdfPath), nil
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", engine)
	}
}
