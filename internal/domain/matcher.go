// Package domain implements the keyword search and parallel copy pipeline.
package domain

import "strings"

// MatchKeyword reports the first keyword, in input order, that is a
// substring of filename. Matching is case-sensitive; an empty keyword list
// never matches.
func MatchKeyword(filename string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(filename, keyword) {
			return keyword, true
		}
	}

	return "", false
}
