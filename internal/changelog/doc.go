// Package changelog extracts the release notes a user gains by upgrading.
//
// This package implements:
//   - Splitting a Markdown changelog into version sections (## [x.y.z] headings)
//   - Selecting the sections between an installed and an update version
//   - Loading the changelog from a URL, a local file, or the embedded copy
//   - Terminal, YAML and table rendering of the selected sections
//
// Parsing and extraction are pure and never fail: malformed input yields an
// empty result rather than an error.
package changelog
