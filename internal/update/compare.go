package update

import "strings"

// component is one dotted segment of a version. ok is false when the
// segment is missing or not a non-negative integer; such a component compares
// as neither greater nor less than anything. digits holds the value without
// leading zeros so components of any length compare exactly.
type component struct {
	digits string
	ok     bool
}

func parseComponents(version string) []component {
	parts := strings.Split(version, ".")
	out := make([]component, len(parts))
	for i, p := range parts {
		if !isDigits(p) {
			continue
		}
		digits := strings.TrimLeft(p, "0")
		if digits == "" {
			digits = "0"
		}
		out[i] = component{digits: digits, ok: true}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cmp orders two numeric components: longer digit strings are larger, equal
// lengths compare lexically.
func (c component) cmp(o component) int {
	if len(c.digits) != len(o.digits) {
		return len(c.digits) - len(o.digits)
	}
	return strings.Compare(c.digits, o.digits)
}

func (c component) greater(o component) bool { return c.ok && o.ok && c.cmp(o) > 0 }
func (c component) less(o component) bool    { return c.ok && o.ok && c.cmp(o) < 0 }

// IsNewer reports whether latest is a newer version than current.
//
// Components are compared left to right, bounded by the number of components
// in latest. The first index where the components differ decides. Components
// absent from current are not zero-filled, and non-numeric components never
// decide, so "1.2.1" is not newer than "1.2" and "1.x" is not newer than "1.0".
// Equal versions return false.
func IsNewer(latest, current string) bool {
	l := parseComponents(latest)
	c := parseComponents(current)

	for i := range l {
		var cur component
		if i < len(c) {
			cur = c[i]
		}
		if l[i].greater(cur) {
			return true
		}
		if l[i].less(cur) {
			return false
		}
	}
	return false
}
