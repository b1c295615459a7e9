package util

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)

// ValidateEmail reports whether addr looks like a deliverable address.
// The host part must carry at least one dot, so "a@b" is rejected.
func ValidateEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// IsExternal reports whether target points outside the console, i.e. is a
// full URL rather than an in-app path.
func IsExternal(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "mailto:") ||
		strings.HasPrefix(target, "tel:")
}

// pathForbidden lists the characters a container working path must not
// contain.
const pathForbidden = `*?"<>|:\`

// ValidatePath reports whether p is usable as a container path.
func ValidatePath(p string) bool {
	if p == "" {
		return false
	}
	return !strings.ContainsAny(p, pathForbidden)
}
