package changelog

// rangeScan is the accumulator folded over the sections of a document.
type rangeScan struct {
	collecting  bool
	stopped     bool
	currentSeen bool
	collected   []Section
}

// step advances the scan by one section, newest to oldest.
func (s rangeScan) step(sec Section, current, update string) rangeScan {
	switch {
	case s.stopped:
	case sec.Matches(update):
		s.collecting = true
		s.collected = append(s.collected, sec)
		// The update section is also the lower bound.
		s.stopped = update == current
	case s.collecting && sec.Matches(current):
		s.stopped = true
	case s.collecting:
		s.collected = append(s.collected, sec)
	case sec.Matches(current):
		s.currentSeen = true
	}
	return s
}

// Extract selects the sections a user gains by moving from current to update.
//
// Sections are scanned in document order. Collection starts at the section
// labelled update (inclusive) and stops before the next section labelled
// current (exclusive). If current never follows, collection runs to the end
// of the document. When update == current, only that section is returned.
func Extract(doc, current, update string) Result {
	sections := ParseSections(doc)
	if len(sections) == 0 {
		return Result{Status: StatusNoSections}
	}

	var scan rangeScan
	for _, sec := range sections {
		scan = scan.step(sec, current, update)
	}

	if !scan.collecting {
		return Result{Status: StatusNotFound}
	}
	return Result{
		Status:   StatusFound,
		Sections: scan.collected,
		Inverted: scan.currentSeen,
	}
}

// ExtractRange returns the bodies of the sections between current (exclusive)
// and update (inclusive), joined by blank lines. It returns "" when update is
// not in the document or the document has no sections.
func ExtractRange(doc, current, update string) string {
	return Extract(doc, current, update).String()
}
