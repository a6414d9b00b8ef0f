package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const shortIDPrefix = "z"

// ToShortID derives the stable short identifier of a service from its long id.
// Short ids start with a letter so they are valid DNS labels.
func ToShortID(longID uuid.UUID) string {
	return shortIDPrefix + longID.String()[:8]
}

var invalidLabelChars = regexp.MustCompile(`[^a-z0-9-]+`)

// SanitizeName turns a user given name into a value usable as a kubernetes resource name.
func SanitizeName(name string) string {
	s := invalidLabelChars.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > 63 {
		s = strings.TrimRight(s[:63], "-")
	}
	return s
}
