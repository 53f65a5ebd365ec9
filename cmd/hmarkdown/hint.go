package main

import (
	"errors"
	"strings"

	hmarkdown "github.com/alnah/go-hmarkdown"
	"github.com/alnah/go-hmarkdown/internal/assets"
	"github.com/alnah/go-hmarkdown/internal/config"
	"github.com/alnah/go-hmarkdown/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, config.ErrUnknownStyle), errors.Is(err, hmarkdown.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(hmarkdown.HighlightStyles())
	case errors.Is(err, assets.ErrStyleNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Names())
	case errors.Is(err, config.ErrInvalidTransform):
		return hints.ForTransform()
	case errors.Is(err, ErrNoMarkdownFiles):
		return hints.ForNoMarkdownFiles()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the "tried a, b" list from a config lookup error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
