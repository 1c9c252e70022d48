package validators

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+7\d{10}$`)

// NormalizePhone brings a russian mobile number to +7XXXXXXXXXX. Spaces,
// dashes and parentheses are ignored; a leading 8 is read as +7.
func NormalizePhone(raw string) (string, bool) {
	p := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	switch {
	case len(p) == 11 && strings.HasPrefix(p, "8"):
		p = "+7" + p[1:]
	case len(p) == 11 && strings.HasPrefix(p, "7"):
		p = "+" + p
	}

	if !phonePattern.MatchString(p) {
		return "", false
	}
	return p, true
}
