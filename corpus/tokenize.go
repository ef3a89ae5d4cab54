package corpus

import (
	"regexp"
	"strings"
)

// runs of letters, combining marks, digits and underscores; marks are needed
// for scripts such as Malayalam where vowel signs are not letters
var tokenRE = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// Tokenize lower-cases s and returns its word tokens in order.
func Tokenize(s string) []string {
	matches := tokenRE.FindAllString(strings.ToLower(s), -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
