// Package update decides whether a newer release of whatsnew is available.
//
// IsNewer never fails: malformed version components simply never count as
// "newer". Callers skip the comparison entirely when either version is
// missing.
package update
