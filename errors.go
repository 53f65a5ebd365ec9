package hmarkdown

import (
	"errors"

	"github.com/alnah/go-hmarkdown/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrPoolClosed = errors.New("engine pool is closed")

	// Re-exported from the pipeline so callers can match them with errors.Is.
	ErrHTMLConversion        = pipeline.ErrHTMLConversion
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
)
