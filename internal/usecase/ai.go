package usecase

import (
	"context"
	"fmt"

	"github.com/eduai-labs/eduai-backend/internal/ai"
	"github.com/eduai-labs/eduai-backend/internal/domain"
)

const (
	defaultExamQuestionCount = 10
	defaultExamDifficulty    = "medium"
)

// AIUsecase is a thin pass-through to the generative model.
type AIUsecase struct {
	client ai.Client
}

// NewAIUsecase accepts a nil client; every call then fails with
// domain.ErrAINotConfigured.
func NewAIUsecase(client ai.Client) *AIUsecase {
	return &AIUsecase{client: client}
}

func (u *AIUsecase) Chat(ctx context.Context, history []ai.Message, message string) (string, error) {
	if u.client == nil {
		return "", domain.ErrAINotConfigured
	}
	return u.client.Chat(ctx, history, message)
}

type ExamRequest struct {
	Subject       string
	Difficulty    string
	QuestionCount int
}

func (u *AIUsecase) GenerateExam(ctx context.Context, req ExamRequest) (string, error) {
	if u.client == nil {
		return "", domain.ErrAINotConfigured
	}

	if req.QuestionCount <= 0 {
		req.QuestionCount = defaultExamQuestionCount
	}
	if req.Difficulty == "" {
		req.Difficulty = defaultExamDifficulty
	}

	prompt := fmt.Sprintf(
		"Generate %d %s difficulty exam questions about %s. Format as JSON with questions and answers.",
		req.QuestionCount, req.Difficulty, req.Subject,
	)
	return u.client.Generate(ctx, prompt)
}
