package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranscript_Basic(t *testing.T) {
	raw := "2024/05/01（三）\n上午09:15 王小姐 這個月的費用要什麼時候繳？\n"

	result := ParseTranscript(raw)

	require.Len(t, result.Messages, 1)
	m := result.Messages[0]
	assert.Equal(t, "2024/05/01", m.Date)
	assert.Equal(t, "上午09:15", m.Time)
	assert.Equal(t, "2024/05/01 上午09:15", m.Datetime)
	assert.Equal(t, "王小姐", m.Sender)
	assert.Equal(t, "這個月的費用要什麼時候繳？", m.Content)
	assert.False(t, m.IsSystem)
	assert.Equal(t, []string{"王小姐"}, result.Participants)
}

func TestParseTranscript_TabSeparated(t *testing.T) {
	raw := "2024/05/01（三）\n下午03:20\t照服員阿美\t今天沐浴服務完成了\n"

	result := ParseTranscript(raw)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "照服員阿美", result.Messages[0].Sender)
	assert.Equal(t, "今天沐浴服務完成了", result.Messages[0].Content)
}

func TestParseTranscript_MessageBeforeDateHeaderSkipped(t *testing.T) {
	raw := "上午09:15 王小姐 沒有日期的訊息\n2024/05/01（三）\n上午09:20 王小姐 有日期的訊息\n"

	result := ParseTranscript(raw)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "有日期的訊息", result.Messages[0].Content)
}

func TestParseTranscript_DateCarriesOver(t *testing.T) {
	raw := "2024/05/01（三）\n" +
		"上午09:15 王小姐 第一句\n" +
		"上午09:16 王小姐 第二句\n" +
		"2024/05/02（四）\n" +
		"下午02:00 李先生 換日了\n"

	result := ParseTranscript(raw)

	require.Len(t, result.Messages, 3)
	assert.Equal(t, "2024/05/01", result.Messages[0].Date)
	assert.Equal(t, "2024/05/01", result.Messages[1].Date)
	assert.Equal(t, "2024/05/02", result.Messages[2].Date)
	assert.Equal(t, []string{"王小姐", "李先生"}, result.Participants)
}

func TestParseTranscript_HeaderAndMalformedLinesSkipped(t *testing.T) {
	raw := "[LINE] 與王小姐的聊天記錄\n" +
		"儲存日期：2024/05/10 下午11:02\n" +
		"2024/05/01（三）\n" +
		"上午09:15 王小姐 正常訊息\n" +
		"這是一行續行文字，沒有時間格式\n" +
		"\n" +
		"上午09:16 王小姐 另一句\n"

	result := ParseTranscript(raw)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, "正常訊息", result.Messages[0].Content)
	assert.Equal(t, "另一句", result.Messages[1].Content)
}

func TestParseTranscript_SystemNotice(t *testing.T) {
	raw := "2024/05/01（三）\n上午10:00 王小姐 ☎ 通話時間1:23\n"

	result := ParseTranscript(raw)

	require.Len(t, result.Messages, 1)
	assert.True(t, result.Messages[0].IsSystem)
}

func TestParseTranscript_EmptyIsValid(t *testing.T) {
	result := ParseTranscript("只有一些\n無法辨識的行\n")

	assert.Empty(t, result.Messages)
	assert.Empty(t, result.Participants)
}

func TestParseTranscript_UniqueIDsFromLinePosition(t *testing.T) {
	raw := "2024/05/01（三）\n上午09:15 王小姐 一\n上午09:16 王小姐 二\n"

	result := ParseTranscript(raw)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, "msg-2", result.Messages[0].ID)
	assert.Equal(t, "msg-3", result.Messages[1].ID)
	assert.NotEqual(t, result.Messages[0].ID, result.Messages[1].ID)
}

func TestParseTranscript_Deterministic(t *testing.T) {
	raw := "2024/05/01（三）\n" +
		"上午09:15 王小姐 費用怎麼算\n" +
		"下午06:30 督導陳 我們約明天討論\n"

	first := ParseTranscript(raw)
	second := ParseTranscript(raw)

	assert.Equal(t, first, second)
}

func TestIsSystemNotice(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"王小姐加入聊天", true},
		{"☎ 通話時間2:31", true},
		{"☎ 未接來電", true},
		{"王小姐收回了訊息", true},
		{"今天服務很好", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSystemNotice(tt.content), tt.content)
	}
}
