package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = "[LINE] 與王小姐的聊天記錄\n" +
	"儲存日期：2024/05/10 下午11:02\n" +
	"2024/05/01（三）\n" +
	"上午09:15 王小姐 這個月的費用要什麼時候繳？\n" +
	"上午09:20 督導陳 月底前繳就可以了\n" +
	"下午03:00 王小姐 ☎ 通話時間1:23\n" +
	"2024/05/02（四）\n" +
	"上午08:00 王小姐 媽媽今天跌倒了，需要協助\n"

func TestHashContent_Deterministic(t *testing.T) {
	raw := []byte(sampleTranscript)

	h1 := HashContent(raw)
	h2 := HashContent(raw)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // sha256 hex
}

func TestHashContent_SensitiveToAnyByte(t *testing.T) {
	h1 := HashContent([]byte(sampleTranscript))
	h2 := HashContent([]byte(sampleTranscript + " "))

	assert.NotEqual(t, h1, h2)
}

func TestFromTranscript(t *testing.T) {
	raw := []byte(sampleTranscript)

	s, err := FromTranscript(raw, "line_export.txt")
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "line_export.txt", s.FileName)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Equal(t, HashContent(raw), s.ContentHash)
	assert.Equal(t, len(raw), s.ByteSize)
	assert.Equal(t, []string{"王小姐", "督導陳"}, s.Participants)
	require.Len(t, s.Messages, 4)

	// payment message classified important
	assert.Contains(t, s.Messages[0].Tags, "payment")
	assert.True(t, s.Messages[0].Important)

	// system notice kept in the timeline, never classified
	sys := s.Messages[2]
	assert.True(t, sys.IsSystem)
	assert.Empty(t, sys.Tags)
	assert.False(t, sys.Important)

	// issue message classified important
	assert.Contains(t, s.Messages[3].Tags, "issue")
	assert.True(t, s.Messages[3].Important)
}

func TestFromTranscript_RejectsNonUTF8(t *testing.T) {
	_, err := FromTranscript([]byte{0xff, 0xfe, 0x00}, "bad.txt")

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestFromTranscript_ZeroMessagesIsValid(t *testing.T) {
	s, err := FromTranscript([]byte("沒有可辨識的內容\n"), "empty.txt")

	require.NoError(t, err)
	assert.Empty(t, s.Messages)
	assert.Empty(t, s.Participants)
	assert.NotEmpty(t, s.ContentHash)
}

func TestFromTranscript_StripsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("2024/05/01（三）\n上午09:15 王小姐 你好\n")...)

	s, err := FromTranscript(raw, "bom.txt")
	require.NoError(t, err)
	require.Len(t, s.Messages, 1)
	// hash covers the bytes as read, BOM included
	assert.Equal(t, HashContent(raw), s.ContentHash)
}

func TestHashIndependentOfFileName(t *testing.T) {
	raw := []byte(sampleTranscript)

	s1, err := FromTranscript(raw, "a.txt")
	require.NoError(t, err)
	s2, err := FromTranscript(raw, "b.txt")
	require.NoError(t, err)

	assert.Equal(t, s1.ContentHash, s2.ContentHash)
	assert.NotEqual(t, s1.ID, s2.ID)
}

func TestMessageIndex(t *testing.T) {
	s, err := FromTranscript([]byte(sampleTranscript), "x.txt")
	require.NoError(t, err)

	idx := s.MessageIndex()
	require.Len(t, idx, len(s.Messages))
	for _, m := range s.Messages {
		got, ok := idx[m.ID]
		require.True(t, ok)
		assert.Equal(t, m.Content, got.Content)
	}
}

func TestShortID(t *testing.T) {
	long := &Session{ID: "0f3a9d2c-6b41-4f8e-9c27-1de5a7b30c44"}
	assert.Equal(t, "0f3a9d2c", long.ShortID())

	// imported archives only guarantee a non-empty identifier
	short := &Session{ID: "abc"}
	assert.Equal(t, "abc", short.ShortID())
}

func TestRiskLevelValid(t *testing.T) {
	assert.True(t, RiskLow.Valid())
	assert.True(t, RiskMedium.Valid())
	assert.True(t, RiskHigh.Valid())
	assert.False(t, RiskLevel("critical").Valid())
	assert.False(t, RiskLevel("").Valid())
	assert.False(t, RiskLevel("LOW").Valid())
}
