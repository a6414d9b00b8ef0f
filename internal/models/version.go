package models

import (
	"fmt"
	"strconv"
	"strings"
)

// VersionsNumber is a service version where only the major part is mandatory ("13", "8.0", "6.0.5-debian").
type VersionsNumber struct {
	Major  string
	Minor  string
	Patch  string
	Suffix string
}

// ParseVersionsNumber parses major[.minor[.patch]][-suffix].
func ParseVersionsNumber(s string) (VersionsNumber, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "v"))
	if s == "" {
		return VersionsNumber{}, fmt.Errorf("version is empty")
	}
	var v VersionsNumber
	if i := strings.Index(s, "-"); i >= 0 {
		v.Suffix = s[i+1:]
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return VersionsNumber{}, fmt.Errorf("version %q has too many parts", s)
	}
	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 32); err != nil {
			return VersionsNumber{}, fmt.Errorf("version part %q is not a number", p)
		}
	}
	v.Major = parts[0]
	if len(parts) > 1 {
		v.Minor = parts[1]
	}
	if len(parts) > 2 {
		v.Patch = parts[2]
	}
	return v, nil
}

// MustParseVersionsNumber panics on an invalid version. Use only on constants.
func MustParseVersionsNumber(s string) VersionsNumber {
	v, err := ParseVersionsNumber(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v VersionsNumber) String() string {
	var b strings.Builder
	b.WriteString(v.Major)
	if v.Minor != "" {
		b.WriteString("." + v.Minor)
		if v.Patch != "" {
			b.WriteString("." + v.Patch)
		}
	}
	if v.Suffix != "" {
		b.WriteString("-" + v.Suffix)
	}
	return b.String()
}

// Matches reports whether other satisfies every part set on v.
func (v VersionsNumber) Matches(other VersionsNumber) bool {
	if v.Major != other.Major {
		return false
	}
	if v.Minor != "" && v.Minor != other.Minor {
		return false
	}
	if v.Patch != "" && v.Patch != other.Patch {
		return false
	}
	return true
}

// ServiceVersionCheckResult is produced when the version requested for a service is resolved.
// Message is set when the matched version differs from the requested one.
type ServiceVersionCheckResult struct {
	RequestedVersion VersionsNumber
	MatchedVersion   VersionsNumber
	Message          string
}

// NewServiceVersionCheckResult sets Message when the matched version differs from the requested one.
func NewServiceVersionCheckResult(requested, matched VersionsNumber, serviceTypeName string) ServiceVersionCheckResult {
	r := ServiceVersionCheckResult{RequestedVersion: requested, MatchedVersion: matched}
	if requested.String() != matched.String() {
		r.Message = fmt.Sprintf("%s version `%s` has been requested by the user; but matching version is `%s`",
			serviceTypeName, requested, matched)
	}
	return r
}
