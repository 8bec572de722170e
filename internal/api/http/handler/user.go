package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
	"github.com/taskhub/taskhub-server/internal/service"
	"github.com/taskhub/taskhub-server/internal/validate"
)

// UserService defines user registration, credential and profile
// operations.
type UserService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	Authenticate(ctx context.Context, email, password string) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	Update(ctx context.Context, id uuid.UUID, params service.UpdateParams) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionService defines session issuance and revocation operations.
type SessionService interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Revoke(ctx context.Context, userID uuid.UUID, token string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// User handles HTTP endpoints for user accounts and sessions.
type User struct {
	userService    UserService
	sessionService SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, sessionService SessionService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Age      int    `json:"age"`
}

// Register handles POST /users.
func (h *User) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := h.sessionService.Issue(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.Public(), "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /users/login.
func (h *User) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password both required"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := h.sessionService.Issue(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public(), "token": token})
}

// Logout handles POST /users/logout. Only the presented token is
// revoked; sessions on other devices stay alive.
func (h *User) Logout(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	if err := h.sessionService.Revoke(c.Request.Context(), auth.User.ID, auth.Token); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

// LogoutAll handles POST /users/logoutAll.
func (h *User) LogoutAll(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	if err := h.sessionService.RevokeAll(c.Request.Context(), auth.User.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

// Me handles GET /users/me.
func (h *User) Me(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	c.JSON(http.StatusOK, auth.User.Public())
}

// GetByID handles GET /users/:id.
func (h *User) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// Update handles PATCH /users/:id. The raw key set is screened against
// the field whitelist before anything is decoded, so an invalid patch
// is rejected whole.
func (h *User) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validate.Fields(patch, validate.UserUpdateFields); err != nil {
		respondError(c, h.logger, err)
		return
	}

	params, err := decodeUserPatch(patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// Delete handles DELETE /users/:id. Removing the record also drops
// every active session.
func (h *User) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

func decodeUserPatch(patch map[string]json.RawMessage) (service.UpdateParams, error) {
	var params service.UpdateParams

	if raw, ok := patch["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return service.UpdateParams{}, err
		}
		params.Name = &name
	}
	if raw, ok := patch["email"]; ok {
		var email string
		if err := json.Unmarshal(raw, &email); err != nil {
			return service.UpdateParams{}, err
		}
		params.Email = &email
	}
	if raw, ok := patch["password"]; ok {
		var password string
		if err := json.Unmarshal(raw, &password); err != nil {
			return service.UpdateParams{}, err
		}
		params.Password = &password
	}
	if raw, ok := patch["age"]; ok {
		var age int
		if err := json.Unmarshal(raw, &age); err != nil {
			return service.UpdateParams{}, err
		}
		params.Age = &age
	}

	return params, nil
}
