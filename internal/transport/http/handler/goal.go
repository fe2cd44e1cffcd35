package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/ErlanBelekov/goals-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type goalUsecaser interface {
	CreateGoal(ctx context.Context, userID, text string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

type GoalHandler struct {
	goalUsecase goalUsecaser
	logger      *slog.Logger
}

func NewGoalHandler(goalUsecase goalUsecaser, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{goalUsecase: goalUsecase, logger: logger.With("component", "goal_handler")}
}

type createGoalRequest struct {
	Text string `json:"text"`
}

type goalResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toGoalResponse(g *domain.Goal) goalResponse {
	return goalResponse{ID: g.ID, Text: g.Text, UserID: g.UserID, CreatedAt: g.CreatedAt}
}

// POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidJSON})
		return
	}

	goal, err := h.goalUsecase.CreateGoal(c.Request.Context(), c.GetString(middleware.UserIDKey), req.Text)
	if err != nil {
		writeError(c, h.logger, "create goal", err)
		return
	}

	c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GET /api/goals
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goalUsecase.ListGoals(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		writeError(c, h.logger, "list goals", err)
		return
	}

	resp := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, toGoalResponse(g))
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	err := h.goalUsecase.DeleteGoal(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "delete goal", err)
		return
	}

	c.Status(http.StatusNoContent)
}
