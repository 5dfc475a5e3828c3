package changelog

import "strings"

// sectionMarker opens every version section. It only counts at the start of a line.
const sectionMarker = "## ["

// ParseSections splits doc into version sections in document order.
// Text before the first marker is the preamble and is discarded.
func ParseSections(doc string) []Section {
	offsets := markerOffsets(doc)
	sections := make([]Section, 0, len(offsets))

	for i, start := range offsets {
		end := len(doc)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		sections = append(sections, newSection(doc[start:end]))
	}
	return sections
}

// markerOffsets returns the byte offsets of every marker that begins a line.
func markerOffsets(doc string) []int {
	var offsets []int
	for pos := 0; pos < len(doc); {
		idx := strings.Index(doc[pos:], sectionMarker)
		if idx < 0 {
			break
		}
		abs := pos + idx
		if abs == 0 || doc[abs-1] == '\n' {
			offsets = append(offsets, abs)
		}
		pos = abs + len(sectionMarker)
	}
	return offsets
}

// newSection builds a Section from a chunk that starts with the marker.
func newSection(chunk string) Section {
	heading := chunk[len(sectionMarker):]
	if nl := strings.IndexByte(heading, '\n'); nl >= 0 {
		heading = heading[:nl]
	}
	heading = strings.TrimRight(heading, "\r")

	s := Section{Body: strings.TrimSpace(chunk)}
	if end := strings.IndexByte(heading, ']'); end >= 0 {
		s.Label = heading[:end]
	} else {
		s.Label = heading
		s.Malformed = true
	}
	return s
}

// Versions lists the labels of all well-formed sections in document order.
func Versions(doc string) []string {
	var versions []string
	for _, s := range ParseSections(doc) {
		if !s.Malformed {
			versions = append(versions, s.Label)
		}
	}
	return versions
}

// Contains reports whether doc has a well-formed section labelled version.
// Callers use it to tell "version not in changelog" apart from an empty range.
func Contains(doc, version string) bool {
	for _, s := range ParseSections(doc) {
		if s.Matches(version) {
			return true
		}
	}
	return false
}
