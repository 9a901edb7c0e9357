package parse

import (
	"fmt"
	"regexp"
	"strings"
)

// LINE desktop/mobile exports are line-oriented: a date header sets the day
// for the message lines that follow it. Example:
//
//	2024/05/01（三）
//	上午09:15 王小姐 這個月的費用要什麼時候繳？
//
// Message lines use either a tab or a single space between time, sender and
// content depending on the export platform.
var (
	dateHeaderRe  = regexp.MustCompile(`^(\d{4}/\d{1,2}/\d{1,2})（(.)）$`)
	messageLineRe = regexp.MustCompile(`^((?:上午|下午)\d{1,2}:\d{2})[\t ](\S+)[\t ](.*)$`)
)

// headerPrefixes are export banner lines, ignored unconditionally.
var headerPrefixes = []string{
	"[LINE]",
	"儲存日期：",
	"儲存日期:",
}

// systemMarkers flag app-generated notices (joins, leaves, call records).
// These stay in the timeline but are never classified.
var systemMarkers = []string{
	"加入聊天",
	"離開聊天",
	"收回了訊息",
	"通話時間",
	"未接來電",
}

// ParseTranscript converts raw LINE export text into ordered messages plus
// the participant set. Lines matching neither pattern are skipped; a message
// line before the first date header is skipped too. Malformed input never
// fails — a transcript with zero recognized messages is a valid result.
func ParseTranscript(raw string) *Result {
	result := &Result{}
	seen := make(map[string]bool)

	currentDate := ""
	lineNum := 0
	for _, line := range strings.Split(raw, "\n") {
		lineNum++
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || isHeaderLine(line) {
			continue
		}

		if m := dateHeaderRe.FindStringSubmatch(line); m != nil {
			currentDate = m[1]
			continue
		}

		m := messageLineRe.FindStringSubmatch(line)
		if m == nil || currentDate == "" {
			continue
		}

		msg := Message{
			ID:       fmt.Sprintf("msg-%d", lineNum),
			Date:     currentDate,
			Time:     m[1],
			Datetime: currentDate + " " + m[1],
			Sender:   m[2],
			Content:  m[3],
			IsSystem: IsSystemNotice(m[3]),
		}
		result.Messages = append(result.Messages, msg)

		if !seen[msg.Sender] {
			seen[msg.Sender] = true
			result.Participants = append(result.Participants, msg.Sender)
		}
	}

	return result
}

// IsSystemNotice reports whether content is an app-generated notice rather
// than a participant utterance.
func IsSystemNotice(content string) bool {
	for _, marker := range systemMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

func isHeaderLine(line string) bool {
	for _, p := range headerPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
