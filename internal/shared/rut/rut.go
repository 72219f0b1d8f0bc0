// Package rut validates and formats Chilean national identity numbers.
package rut

import (
	"strconv"
	"strings"
)

// Clean strips dots, dashes and whitespace and upper-cases the verifier
// digit, e.g. "12.345.678-k" -> "12345678K".
func Clean(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteRune('K')
		}
	}
	return b.String()
}

// IsValid reports whether the value is a well-formed RUT with a correct
// modulo-11 verifier digit. Accepts dotted, dashed or bare input.
func IsValid(raw string) bool {
	clean := Clean(raw)
	if len(clean) < 8 || len(clean) > 9 {
		return false
	}

	body := clean[:len(clean)-1]
	verifier := clean[len(clean)-1:]
	if _, err := strconv.Atoi(body); err != nil {
		return false
	}

	return computeVerifier(body) == verifier
}

// Format returns the canonical dotted-and-dashed form, e.g. "12.345.678-5".
// The input must already be valid.
func Format(raw string) string {
	clean := Clean(raw)
	if len(clean) < 2 {
		return clean
	}

	body := clean[:len(clean)-1]
	verifier := clean[len(clean)-1:]

	var groups []string
	for len(body) > 3 {
		groups = append([]string{body[len(body)-3:]}, groups...)
		body = body[:len(body)-3]
	}
	groups = append([]string{body}, groups...)

	return strings.Join(groups, ".") + "-" + verifier
}

func computeVerifier(body string) string {
	factors := []int{2, 3, 4, 5, 6, 7}
	sum := 0
	j := 0
	for i := len(body) - 1; i >= 0; i-- {
		digit := int(body[i] - '0')
		sum += digit * factors[j%len(factors)]
		j++
	}

	switch rest := 11 - sum%11; rest {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(rest)
	}
}
