// Package extract recovers structured question/answer pairs from the
// semi-structured free text of intake form emails. The grammar is not
// general: the question list is fixed and known up front, and answers are
// whatever sits between one known label and the next.
package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Answers maps a question label to its extracted answer. Absent questions
// map to the empty string; the map always contains every requested label.
type Answers map[string]string

// NormalizeSpace collapses runs of whitespace to single spaces and trims
// both ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Extract scans rawText for each question label, in order, and returns the
// answer found after each one.
//
// The scan is forward-only and case-insensitive over whitespace-normalized
// text. For each label, the answer candidate starts after the label's first
// occurrence, with one leading "?" (and surrounding spaces) stripped. The
// candidate is closed at the earliest occurrence of any other label that
// starts strictly after position 0 of the candidate; an occurrence at
// position 0 is skipped as a recurring-prefix ambiguity and the search for
// that label resumes one rune in. If no other label follows, the answer runs
// to the end of the text.
//
// Labels that are substrings of other labels must be ordered with the longer
// label first, or the shorter prefix will truncate its sibling's answer.
// That ordering is the question list author's responsibility; Extract does
// not verify it.
//
// A label not present in the text yields "" for that label. Empty rawText
// yields an all-empty map. Extract never fails.
func Extract(rawText string, labels []string) Answers {
	answers := make(Answers, len(labels))

	text := NormalizeSpace(rawText)

	normLabels := make([]string, len(labels))
	for i, label := range labels {
		normLabels[i] = NormalizeSpace(label)
	}

	for i, label := range labels {
		idx, matchLen := foldIndex(text, normLabels[i], 0)
		if idx < 0 {
			answers[label] = ""
			continue
		}

		candidate := text[idx+matchLen:]
		candidate = stripQuestionMark(candidate)

		end := len(candidate)
		for j, other := range normLabels {
			if j == i || other == "" {
				continue
			}
			pos := occurrenceAfterStart(candidate, other)
			if pos > 0 && pos < end {
				end = pos
			}
		}

		answers[label] = strings.TrimSpace(candidate[:end])
	}

	return answers
}

// occurrenceAfterStart returns the earliest case-insensitive occurrence of
// needle in s that starts strictly after position 0, or -1. A match at
// position 0 does not count and does not shadow a later one.
func occurrenceAfterStart(s, needle string) int {
	pos, _ := foldIndex(s, needle, 0)
	if pos != 0 {
		return pos
	}
	_, size := utf8.DecodeRuneInString(s)
	next, _ := foldIndex(s, needle, size)
	return next
}

// foldIndex is a case-insensitive strings.Index that reports byte offsets
// into s itself. Offsets from searching a ToLower copy cannot be trusted:
// case mapping is not length-preserving for some runes, so the copy drifts
// out of byte alignment with the original. The match starts at a rune
// boundary at or after from; the second result is the matched length in s,
// which may differ from len(needle).
func foldIndex(s, needle string, from int) (pos, matchLen int) {
	if needle == "" {
		return -1, 0
	}
	for i := from; i < len(s); {
		if n := foldPrefixLen(s[i:], needle); n >= 0 {
			return i, n
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1, 0
}

// foldPrefixLen reports how many bytes of s case-fold-match the whole of
// needle, or -1 if s does not start with needle.
func foldPrefixLen(s, needle string) int {
	total := 0
	for len(needle) > 0 {
		if len(s) == 0 {
			return -1
		}
		sr, ssize := utf8.DecodeRuneInString(s)
		nr, nsize := utf8.DecodeRuneInString(needle)
		if !runesEqualFold(sr, nr) {
			return -1
		}
		s = s[ssize:]
		needle = needle[nsize:]
		total += ssize
	}
	return total
}

// runesEqualFold reports whether two runes are equal under simple Unicode
// case folding, the same relation strings.EqualFold uses.
func runesEqualFold(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// stripQuestionMark removes leading spaces, at most one "?", and any spaces
// after it. The text is already whitespace-normalized so single spaces are
// all that can appear.
func stripQuestionMark(s string) string {
	s = strings.TrimLeft(s, " ")
	s = strings.TrimPrefix(s, "?")
	return strings.TrimLeft(s, " ")
}
