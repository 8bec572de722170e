package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
)

// respondError translates the error taxonomy into HTTP responses.
// Clients only ever see the stable, minimal messages below; anything
// unexpected is logged server-side and returned as a bare 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already taken"})
	case errors.Is(err, model.ErrInvalidCredentials):
		// Same shape for unknown email and wrong password.
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to login"})
	case errors.Is(err, model.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
	case errors.Is(err, model.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		log.Error("internal server error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
