// Package summary produces extractive summaries of review text: it selects
// the most representative existing sentences rather than generating new ones.
package summary

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are excluded from frequency scoring so common function words do
// not dominate sentence scores.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "her": {}, "his": {}, "i": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "my": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"she": {}, "so": {}, "that": {}, "the": {}, "their": {}, "they": {},
	"this": {}, "to": {}, "very": {}, "was": {}, "were": {}, "with": {},
	"you": {},
}

// Summarizer scores sentences by normalized word frequency and returns the
// top sentences in their original order.
type Summarizer struct {
	sentenceCount int
}

// New creates a Summarizer that keeps at most sentenceCount sentences.
func New(sentenceCount int) *Summarizer {
	if sentenceCount <= 0 {
		sentenceCount = 3
	}
	return &Summarizer{sentenceCount: sentenceCount}
}

// Summarize joins the given texts and extracts the highest-scoring sentences.
// Empty input yields an empty summary.
func (s *Summarizer) Summarize(texts []string) string {
	joined := strings.TrimSpace(strings.Join(texts, " "))
	if joined == "" {
		return ""
	}

	sentences := splitSentences(joined)
	if len(sentences) <= s.sentenceCount {
		return strings.Join(sentences, " ")
	}

	frequencies := wordFrequencies(joined)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, sentence := range sentences {
		words := tokenize(sentence)
		if len(words) == 0 {
			continue
		}
		var total float64
		for _, word := range words {
			total += frequencies[word]
		}
		ranked = append(ranked, scored{index: i, score: total / float64(len(words))})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	top := ranked[:s.sentenceCount]
	sort.Slice(top, func(i, j int) bool { return top[i].index < top[j].index })

	picked := make([]string, 0, len(top))
	for _, entry := range top {
		picked = append(picked, sentences[entry.index])
	}
	return strings.Join(picked, " ")
}

// splitSentences breaks text on terminal punctuation, keeping the punctuation
// with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}
	return sentences
}

// wordFrequencies computes word counts normalized by the maximum count.
func wordFrequencies(text string) map[string]float64 {
	counts := make(map[string]int)
	maxCount := 0
	for _, word := range tokenize(text) {
		counts[word]++
		if counts[word] > maxCount {
			maxCount = counts[word]
		}
	}

	frequencies := make(map[string]float64, len(counts))
	for word, count := range counts {
		frequencies[word] = float64(count) / float64(maxCount)
	}
	return frequencies
}

// tokenize lowercases and splits on non-letter runes, dropping stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, skip := stopwords[field]; skip {
			continue
		}
		words = append(words, field)
	}
	return words
}
