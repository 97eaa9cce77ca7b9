package services

import (
	"context"
	"math/rand"
	"time"

	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
	"github.com/frqgit/year-7-math/internal/platform/logger"
	"github.com/frqgit/year-7-math/internal/questions"
)

// QuestionService hands out generated quizzes. Generation is pure and
// stateless; nothing here touches the database.
type QuestionService interface {
	GenerateQuiz(ctx context.Context, kind string, count int) ([]questions.Question, error)
	GenerateTable(ctx context.Context, table, count int) ([]questions.Question, error)
	Kinds(ctx context.Context) []questions.Kind
}

type questionService struct {
	log *logger.Logger
}

func NewQuestionService(baseLog *logger.Logger) QuestionService {
	return &questionService{log: baseLog.With("service", "question")}
}

func (qs *questionService) GenerateQuiz(_ context.Context, kind string, count int) ([]questions.Question, error) {
	if count <= 0 {
		count = 10
	}
	k := questions.Kind(kind)
	if k != "" && !questions.Valid(k) {
		return nil, apperrors.ErrValidation
	}
	quiz, err := questions.GenerateQuiz(k, count, newRNG())
	if err != nil {
		return nil, apperrors.ErrValidation
	}
	return quiz, nil
}

func (qs *questionService) GenerateTable(_ context.Context, table, count int) ([]questions.Question, error) {
	if count <= 0 {
		count = 10
	}
	quiz, err := questions.Table(table, count, newRNG())
	if err != nil {
		return nil, apperrors.ErrValidation
	}
	return quiz, nil
}

func (qs *questionService) Kinds(_ context.Context) []questions.Kind {
	return questions.Kinds()
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
