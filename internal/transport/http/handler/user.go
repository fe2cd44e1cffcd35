package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/goals-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/goals-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// userUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type userUsecaser interface {
	SignUp(ctx context.Context, input usecase.SignUpInput) error
	SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.SignedUser, error)
	VerifyToken(ctx context.Context, rawToken string) error
}

type UserHandler struct {
	authUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(authUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

// Field rules live in the domain validators; binding only checks the JSON shape.
type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// POST /api/users
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidJSON})
		return
	}

	err := h.authUsecase.SignUp(c.Request.Context(), usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, h.logger, "sign up", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created"})
}

// POST /api/users/signin
func (h *UserHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidJSON})
		return
	}

	user, err := h.authUsecase.SignIn(c.Request.Context(), usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, "sign in", err)
		return
	}

	c.JSON(http.StatusOK, signInResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: user.Token,
	})
}

// GET /api/users/verify
func (h *UserHandler) Verify(c *gin.Context) {
	raw, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMissingToken})
		return
	}

	if err := h.authUsecase.VerifyToken(c.Request.Context(), raw); err != nil {
		writeError(c, h.logger, "verify token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}
