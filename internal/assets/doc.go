// Package assets provides the stylesheets added to standalone HTML output.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {basePath}/styles/{name}.css on disk
//	    └── AssetResolver     - custom directory first, embedded as fallback
//
// A style is referenced by name ("default", "minimal") or, when the reference
// contains a path separator, by the path of a CSS file.
//
// # Security
//
// Style names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
