// Package query derives read-only views over a session's messages:
// day-grouped timelines, free-text search and tag filtering. Everything is
// recomputed per call; transcripts top out in the low thousands of messages.
package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tom26757207-cyber/line-archive/internal/parse"
)

// DayGroup is the messages of one calendar date, in original order.
type DayGroup struct {
	Date     string
	Messages []parse.Message
}

// GroupByDate partitions messages by date. Date keys appear in first-seen
// order and each group preserves the transcript's relative order.
func GroupByDate(msgs []parse.Message) []DayGroup {
	var groups []DayGroup
	byDate := make(map[string]int)

	for _, m := range msgs {
		idx, ok := byDate[m.Date]
		if !ok {
			idx = len(groups)
			byDate[m.Date] = idx
			groups = append(groups, DayGroup{Date: m.Date})
		}
		groups[idx].Messages = append(groups[idx].Messages, m)
	}
	return groups
}

// Search returns the ordered subsequence whose content or sender contains q,
// case-insensitively. An empty query matches everything.
func Search(msgs []parse.Message, q string) []parse.Message {
	if q == "" {
		return msgs
	}
	lower := strings.ToLower(q)
	var out []parse.Message
	for _, m := range msgs {
		if strings.Contains(strings.ToLower(m.Content), lower) ||
			strings.Contains(strings.ToLower(m.Sender), lower) {
			out = append(out, m)
		}
	}
	return out
}

// FilterTag returns the ordered subsequence of messages carrying tag.
// An empty tag matches everything.
func FilterTag(msgs []parse.Message, tag string) []parse.Message {
	if tag == "" {
		return msgs
	}
	var out []parse.Message
	for _, m := range msgs {
		for _, t := range m.Tags {
			if t == tag {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Filter composes search and tag filtering conjunctively.
func Filter(msgs []parse.Message, q, tag string) []parse.Message {
	return FilterTag(Search(msgs, q), tag)
}

// FilterImportant returns only messages the classifier marked important.
func FilterImportant(msgs []parse.Message) []parse.Message {
	var out []parse.Message
	for _, m := range msgs {
		if m.Important {
			out = append(out, m)
		}
	}
	return out
}

// IndexFold returns the byte offsets [start, end) of the first
// case-insensitive occurrence of q in text, or (-1, -1). Matching is done
// rune by rune against the original text, so the offsets are valid slice
// bounds even when lowercasing changes a rune's byte length.
func IndexFold(text, q string) (int, int) {
	if q == "" {
		return -1, -1
	}
	qRunes := []rune(q)
	for i, r := range qRunes {
		qRunes[i] = unicode.ToLower(r)
	}

	for start := 0; start < len(text); {
		if end, ok := matchFoldAt(text, start, qRunes); ok {
			return start, end
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		start += size
	}
	return -1, -1
}

// matchFoldAt reports whether qRunes matches text at byte offset start,
// returning the byte offset just past the match.
func matchFoldAt(text string, start int, qRunes []rune) (int, bool) {
	i := start
	for _, want := range qRunes {
		if i >= len(text) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.ToLower(r) != want {
			return 0, false
		}
		i += size
	}
	return i, true
}

// Snippet extracts a window of contextChars runes around the first
// case-insensitive occurrence of q in text, marking the match with
// >>> and <<< for downstream highlighting.
func Snippet(text, q string, contextChars int) string {
	start, end := IndexFold(text, q)
	if start < 0 {
		if utf8.RuneCountInString(text) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}

	runes := []rune(text)
	matchStart := utf8.RuneCountInString(text[:start])
	matchEnd := matchStart + utf8.RuneCountInString(text[start:end])

	lo := matchStart - contextChars
	if lo < 0 {
		lo = 0
	}
	hi := matchEnd + contextChars
	if hi > len(runes) {
		hi = len(runes)
	}

	prefix, suffix := "", ""
	if lo > 0 {
		prefix = "..."
	}
	if hi < len(runes) {
		suffix = "..."
	}

	return prefix + string(runes[lo:matchStart]) +
		">>>" + string(runes[matchStart:matchEnd]) + "<<<" +
		string(runes[matchEnd:hi]) + suffix
}
