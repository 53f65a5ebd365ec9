package assets

import (
	"fmt"
	"os"

	"github.com/alnah/go-hmarkdown/internal/fileutil"
)

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// ResolveStyle loads a stylesheet from a reference that is either a style
// name (looked up through loader) or a path to a CSS file.
// An empty reference yields no stylesheet.
func ResolveStyle(ref string, loader StyleLoader) (string, error) {
	if ref == "" {
		return "", nil
	}

	if !fileutil.IsFilePath(ref) {
		return loader.LoadStyle(ref)
	}

	content, err := os.ReadFile(ref) // #nosec G304 -- user-provided stylesheet
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, ref)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}
