package services

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/testutil"
)

type fakeCompleter struct {
	content string
	err     error
	prompt  string
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if len(req.Messages) > 0 {
		f.prompt = req.Messages[0].Content
	}
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.content}}},
	}, nil
}

func TestPlanningService_NotConfigured(t *testing.T) {
	svc := NewPlanningService(nil, nil)

	_, err := svc.SuggestStages(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)
}

func TestPlanningService_SuggestStages(t *testing.T) {
	db := testutil.NewDB(t)
	design := testutil.CreateTask(t, db, "Wireframes", "6.00")
	build := testutil.CreateTask(t, db, "Backend API", "10.00")
	deploy := testutil.CreateTask(t, db, "Deploy", "2.50")

	completer := &fakeCompleter{content: "```json\n" + `[
		{"name": " Design ", "description": "UX", "task_ids": [` + itoa(design.ID) + `, 999]},
		{"name": "", "description": "nameless", "task_ids": [` + itoa(build.ID) + `]},
		{"name": "Ghost", "task_ids": [12345]},
		{"name": "Delivery", "task_ids": [` + itoa(build.ID) + `, ` + itoa(deploy.ID) + `, ` + itoa(deploy.ID) + `]}
	]` + "\n```"}

	svc := NewPlanningService(repository.NewTaskRepository(db), NewAIServiceWithClient(completer))
	plans, err := svc.SuggestStages(context.Background(), "A small web shop")
	require.NoError(t, err)

	require.Len(t, plans, 2)
	assert.Equal(t, "Design", plans[0].Name)
	assert.Equal(t, 0, plans[0].OrderIndex)
	assert.Len(t, plans[0].Tasks, 1)
	assert.Equal(t, "6.00", plans[0].EstimatedHours.StringFixed(2))

	assert.Equal(t, "Delivery", plans[1].Name)
	assert.Equal(t, 1, plans[1].OrderIndex)
	assert.Len(t, plans[1].Tasks, 2)
	assert.Equal(t, "12.50", plans[1].EstimatedHours.StringFixed(2))

	assert.Contains(t, completer.prompt, "Backend API")
	assert.Contains(t, completer.prompt, "A small web shop")
}

func TestPlanningService_EmptyAndInvalidOutput(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateTask(t, db, "Only", "1.00")
	repo := repository.NewTaskRepository(db)

	_, err := NewPlanningService(repo, NewAIServiceWithClient(&fakeCompleter{content: "[]"})).
		SuggestStages(context.Background(), "brief")
	assert.ErrorIs(t, err, ErrAINoStagesSuggested)

	_, err = NewPlanningService(repo, NewAIServiceWithClient(&fakeCompleter{content: `[{"name":"x","task_ids":[42]}]`})).
		SuggestStages(context.Background(), "brief")
	assert.ErrorIs(t, err, ErrAINoValidStages)

	_, err = NewPlanningService(repo, NewAIServiceWithClient(&fakeCompleter{content: "not json"})).
		SuggestStages(context.Background(), "brief")
	assert.Error(t, err)

	upstream := errors.New("rate limited")
	_, err = NewPlanningService(repo, NewAIServiceWithClient(&fakeCompleter{err: upstream})).
		SuggestStages(context.Background(), "brief")
	assert.ErrorIs(t, err, upstream)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
