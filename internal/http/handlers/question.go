package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frqgit/year-7-math/internal/services"
)

type QuestionHandler struct {
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// GET /api/questions?kind=percent_of&count=10
func (qh *QuestionHandler) Generate(c *gin.Context) {
	quiz, err := qh.questionService.GenerateQuiz(c.Request.Context(), c.Query("kind"), queryInt(c, "count", 10))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": quiz})
}

// GET /api/questions/tables/:table?count=10
func (qh *QuestionHandler) Table(c *gin.Context) {
	table := paramInt(c, "table")
	quiz, err := qh.questionService.GenerateTable(c.Request.Context(), table, queryInt(c, "count", 10))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": quiz})
}

// GET /api/questions/kinds
func (qh *QuestionHandler) Kinds(c *gin.Context) {
	RespondOK(c, gin.H{"kinds": qh.questionService.Kinds(c.Request.Context())})
}
