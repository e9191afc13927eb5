package summary

import (
	"strings"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := New(3)

	if got := s.Summarize(nil); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
	if got := s.Summarize([]string{"   "}); got != "" {
		t.Fatalf("expected empty summary for blank input, got %q", got)
	}
}

func TestSummarizeShortInputPassesThrough(t *testing.T) {
	s := New(3)

	got := s.Summarize([]string{"Loved it.", "Great pacing."})
	if got != "Loved it. Great pacing." {
		t.Fatalf("expected all sentences kept, got %q", got)
	}
}

func TestSummarizeSelectsAtMostN(t *testing.T) {
	s := New(2)

	texts := []string{
		"The plot is gripping and the plot twists are clever.",
		"I did not enjoy the food descriptions.",
		"The plot kept me reading all night.",
		"Shipping was fast.",
		"A gripping plot with strong characters.",
	}

	got := s.Summarize(texts)
	if got == "" {
		t.Fatal("expected non-empty summary")
	}
	if n := len(splitSentences(got)); n > 2 {
		t.Fatalf("expected at most 2 sentences, got %d: %q", n, got)
	}
	// Sentences about the dominant topic should win over one-off remarks.
	if !strings.Contains(strings.ToLower(got), "plot") {
		t.Fatalf("expected summary to favor the dominant topic, got %q", got)
	}
}

func TestSummarizePreservesOriginalOrder(t *testing.T) {
	s := New(2)

	texts := []string{
		"First the story hooks you with mystery mystery mystery.",
		"Middle chapters drag a little.",
		"Finally the mystery mystery resolution lands perfectly.",
	}

	got := s.Summarize(texts)
	first := strings.Index(got, "First")
	finally := strings.Index(got, "Finally")
	if first == -1 || finally == -1 || first > finally {
		t.Fatalf("expected selected sentences in document order, got %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	if len(got) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(got), got)
	}
	if got[1] != "Two!" {
		t.Fatalf("expected punctuation kept, got %q", got[1])
	}
}
