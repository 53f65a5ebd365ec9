package assets

import (
	"errors"
	"testing"
)

func TestNewEmbeddedLoader(t *testing.T) {
	t.Parallel()

	if NewEmbeddedLoader() == nil {
		t.Fatal("NewEmbeddedLoader() returned nil")
	}
}

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range loader.Names() {
		content, err := loader.LoadStyle(name)
		if err != nil {
			t.Errorf("LoadStyle(%q) error = %v", name, err)
			continue
		}
		if content == "" {
			t.Errorf("LoadStyle(%q) returned empty content", name)
		}
	}

	if _, err := loader.LoadStyle("style.css"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(\"style.css\") error = %v, want ErrInvalidAssetName", err)
	}
}

func TestEmbeddedLoader_Names(t *testing.T) {
	t.Parallel()

	names := NewEmbeddedLoader().Names()
	want := []string{"default", "minimal"}

	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestEmbeddedLoader_ImplementsStyleLoader(t *testing.T) {
	t.Parallel()

	var _ StyleLoader = NewEmbeddedLoader()
}
