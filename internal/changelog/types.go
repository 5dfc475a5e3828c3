package changelog

import "strings"

// Section is one release entry of a changelog document.
// Label is the raw text between "## [" and "]" on the heading line.
// Body is the heading plus everything up to the next heading, trimmed.
// A heading without a closing "]" is Malformed and never matches a version.
type Section struct {
	Label     string `yaml:"version"`
	Body      string `yaml:"body"`
	Malformed bool   `yaml:"malformed,omitempty"`
}

// Matches reports whether the section is labelled exactly with version.
// Labels are compared character for character; "1.2" does not match "1.2.0".
func (s Section) Matches(version string) bool {
	return !s.Malformed && version != "" && s.Label == version
}

// Status describes why a Result holds the sections it does.
type Status int

const (
	// StatusNoSections means the document contains no version sections at all.
	StatusNoSections Status = iota
	// StatusNotFound means the update version does not appear in the document.
	StatusNotFound
	// StatusFound means the update version was found; Sections is non-empty.
	StatusFound
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusNoSections:
		return "no-sections"
	case StatusNotFound:
		return "not-found"
	case StatusFound:
		return "found"
	default:
		return "unknown"
	}
}

// Result is the outcome of a range extraction.
type Result struct {
	Status   Status
	Sections []Section
	// Inverted is set when the current version appears before the update
	// version in document order, which means the caller swapped the arguments.
	Inverted bool
}

// String joins the collected section bodies with a blank line, newest first.
// It is empty when nothing was collected.
func (r Result) String() string {
	bodies := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		bodies[i] = s.Body
	}
	return strings.Join(bodies, "\n\n")
}

// Labels returns the labels of the collected sections in order.
func (r Result) Labels() []string {
	labels := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		labels[i] = s.Label
	}
	return labels
}
