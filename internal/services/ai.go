package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/project-estimation-api/internal/models"
)

// ChatCompleter is the part of the OpenAI client the planner needs
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
}

// SuggestedStage is one stage of a plan as returned by the model
type SuggestedStage struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TaskIDs     []uint64 `json:"task_ids"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithClient wraps an existing completion client
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{client: client}
}

// SuggestStagesFromBrief asks the model to split a project brief into
// ordered stages built from the catalog tasks
func (s *AIService) SuggestStagesFromBrief(ctx context.Context, brief string, catalog []models.Task) ([]SuggestedStage, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	var b strings.Builder
	for _, task := range catalog {
		fmt.Fprintf(&b, "- id=%d | %s | %s | %s h\n", task.ID, task.Name, task.Type, task.BaseTimeHours.StringFixed(2))
	}

	prompt := fmt.Sprintf(`You are a software project planner. Split the project below into ordered stages.
Use only tasks from the catalog, referenced by id.

Catalog:
%s
Project:
%s

Return a JSON array, in execution order:
[
  {
    "name": "stage name",
    "description": "what the stage delivers",
    "task_ids": [1, 2]
  }
]

Rules:
- Return [] if the project cannot be planned with this catalog
- Do not invent task ids
- Return JSON only, no explanations`, b.String(), brief)

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

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var stages []SuggestedStage
	if err := json.Unmarshal([]byte(content), &stages); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return stages, nil
}

// stripCodeFence removes a surrounding ```json fence
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
