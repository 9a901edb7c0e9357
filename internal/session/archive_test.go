package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnalysis() *Analysis {
	return &Analysis{
		Summary:   "家屬詢問費用並回報跌倒事件",
		Sentiment: "negative",
		Topics:    []string{"費用", "照護安全"},
		Dynamics:  "家屬焦慮，服務方回應及時",
		Events: []CaseEvent{
			{
				Title:             "跌倒事件",
				Summary:           "個案於5/2清晨跌倒",
				RiskLevel:         RiskHigh,
				RiskAssessment:    "需評估居家環境",
				Remarks:           "已通知護理師",
				DateRange:         "2024/05/02",
				RelatedMessageIDs: []string{"msg-8"},
				FamilyExcerpts:    []string{"媽媽今天跌倒了，需要協助"},
				StaffExcerpts:     []string{"我們馬上安排訪視"},
			},
		},
		Stats: Stats{PaymentCount: 1, IssueCount: 1},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	s, err := FromTranscript([]byte(sampleTranscript), "line_export.txt")
	require.NoError(t, err)
	s.Analysis = testAnalysis()

	data, err := ExportArchive(s)
	require.NoError(t, err)

	restored, err := ImportArchive(data)
	require.NoError(t, err)

	assert.Equal(t, s, restored)
}

func TestArchiveRoundTrip_NoAnalysis(t *testing.T) {
	s, err := FromTranscript([]byte(sampleTranscript), "line_export.txt")
	require.NoError(t, err)

	data, err := ExportArchive(s)
	require.NoError(t, err)

	restored, err := ImportArchive(data)
	require.NoError(t, err)
	assert.Equal(t, s, restored)
	assert.Nil(t, restored.Analysis)
}

func TestImportArchive_RejectsMalformedJSON(t *testing.T) {
	_, err := ImportArchive([]byte("not json at all"))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestImportArchive_RejectsUnknownVersion(t *testing.T) {
	_, err := ImportArchive([]byte(`{"version": 99, "id": "x", "contentHash": "y"}`))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestImportArchive_RejectsDuplicateMessageIDs(t *testing.T) {
	s, err := FromTranscript([]byte(sampleTranscript), "x.txt")
	require.NoError(t, err)
	s.Messages[1].ID = s.Messages[0].ID

	data, err := ExportArchive(s)
	require.NoError(t, err)

	_, err = ImportArchive(data)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "duplicate message id")
}

func TestImportArchive_RejectsBadRiskLevel(t *testing.T) {
	s, err := FromTranscript([]byte(sampleTranscript), "x.txt")
	require.NoError(t, err)
	a := testAnalysis()
	a.Events[0].RiskLevel = "severe"
	s.Analysis = a

	data, err := ExportArchive(s)
	require.NoError(t, err)

	_, err = ImportArchive(data)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "risk level")
}

func TestImportArchive_RejectsMissingID(t *testing.T) {
	_, err := ImportArchive([]byte(`{"version": 1, "contentHash": "abc"}`))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}
