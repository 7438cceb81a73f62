package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/planner-api/internal/constants"
	"github.com/yukikurage/planner-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

type SuggestedTask struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Day      string `json:"day"`
}

// NewAIService returns nil when apiKey is empty. baseURL overrides the API
// endpoint when set.
func NewAIService(apiKey, baseURL string) *AIService {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// SuggestTasks extracts weekly tasks from free text using OpenAI.
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	prompt := fmt.Sprintf(`You are a planning assistant. Extract concrete tasks from the text below and schedule each on a day of the week.

Text:
%s

Return a JSON array of at most %d objects:
[
  {
    "name": "short task name",
    "category": "one or two word category, e.g. Work, Health, Home",
    "day": "one of %s"
  }
]

Rules:
- Return [] when the text contains no tasks
- Return only JSON, without any explanation`, text, constants.MaxSuggestedTasks, strings.Join(models.Weekdays, ", "))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`\n ")

	var tasks []SuggestedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	if len(tasks) > constants.MaxSuggestedTasks {
		tasks = tasks[:constants.MaxSuggestedTasks]
	}

	return tasks, nil
}
