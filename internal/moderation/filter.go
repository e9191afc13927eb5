// Package moderation cleans user-submitted review text before it is persisted.
package moderation

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const mask = "***"

// defaultBannedWords is the stock profanity list. Matching is case-insensitive
// and whole-word.
var defaultBannedWords = []string{
	"damn",
	"shit",
	"fuck",
	"asshole",
	"bastard",
}

// Filter strips HTML from review text and masks banned words. It is pure and
// safe for concurrent use.
type Filter struct {
	banned map[string]struct{}
	policy *bluemonday.Policy
}

// NewFilter creates a filter with the given banned words, falling back to the
// stock list when none are supplied.
func NewFilter(bannedWords []string) *Filter {
	if len(bannedWords) == 0 {
		bannedWords = defaultBannedWords
	}

	banned := make(map[string]struct{}, len(bannedWords))
	for _, w := range bannedWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			banned[w] = struct{}{}
		}
	}

	return &Filter{
		banned: banned,
		policy: bluemonday.StrictPolicy(),
	}
}

// Clean sanitizes HTML out of the text and masks banned words.
func (f *Filter) Clean(text string) string {
	sanitized := f.policy.Sanitize(text)

	fields := strings.Fields(sanitized)
	changed := false
	for i, field := range fields {
		word := strings.ToLower(strings.Trim(field, ".,!?;:\"'()"))
		if _, ok := f.banned[word]; ok {
			fields[i] = strings.Replace(field, strings.Trim(field, ".,!?;:\"'()"), mask, 1)
			changed = true
		}
	}

	if !changed {
		return sanitized
	}
	return strings.Join(fields, " ")
}
