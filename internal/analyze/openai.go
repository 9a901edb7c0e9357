package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tom26757207-cyber/line-archive/internal/parse"
	"github.com/tom26757207-cyber/line-archive/internal/session"
)

const analysisSystemPrompt = `你是長期照顧個案的對話分析員。根據提供的 LINE 對話紀錄，找出照護個案中值得記錄的事件（費用爭議、服務調整、排班異動、照護問題等），並以 JSON 回覆。

回覆必須是單一 JSON 物件，包含欄位：
- summary: 對話整體摘要
- sentiment: 整體情緒（positive/neutral/negative）
- topics: 主要話題列表
- relationshipDynamics: 家屬與服務單位的互動描述
- events: 事件列表，每個事件包含 title, summary, riskLevel (low/medium/high), riskAssessment, remarks, dateRange, relatedMessageIds, familyExcerpts, staffExcerpts
- statistics: {paymentCount, serviceCount, scheduleCount, issueCount}

relatedMessageIds 只能引用提供的訊息編號。excerpts 必須逐字引用原文。只回覆 JSON，不要其他文字。`

// OpenAIClient is the live Collaborator backed by an OpenAI-compatible chat
// completion endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// OpenAIConfig carries the collaborator endpoint settings.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewOpenAIClient(cfg OpenAIConfig, logger *slog.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}
}

// Analyze submits the sampled messages and parses the structured response.
// Request failures and cancellation come back as CollaboratorError; a
// response violating the payload contract as SchemaError.
func (c *OpenAIClient) Analyze(ctx context.Context, msgs []parse.Message) (*session.Analysis, error) {
	var sb strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&sb, "[%s] %s %s: %s\n", m.ID, m.Datetime, m.Sender, m.Content)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
	})
	if err != nil {
		return nil, &CollaboratorError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &CollaboratorError{Err: fmt.Errorf("empty completion response")}
	}

	text := resp.Choices[0].Message.Content
	c.logger.Debug("collaborator responded", "model", c.model, "bytes", len(text))

	return ParsePayload(extractJSON(text))
}

// extractJSON trims anything around the outermost JSON object; models
// occasionally wrap the payload in markdown fences despite instructions.
func extractJSON(text string) []byte {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return []byte(text)
	}
	return []byte(text[start : end+1])
}
