package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"vegetable-orders/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog        *service.CatalogService
	Orders         *service.OrderService
	Activity       *service.ActivityService
	Log            *slog.Logger
	MaxUploadBytes int64
}

func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/order_page")
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func vegetableID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// failureMessage turns a service error into the text shown to the user.
// Unexpected errors are logged and get a generic message.
func (h *Handler) failureMessage(c *gin.Context, err error) string {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Please check the form: %s %s.", verr.Field, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		return msgNotFound
	case errors.Is(err, service.ErrInsufficientStock):
		return "Not enough stock."
	default:
		h.Log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
		return "Something went wrong, please try again."
	}
}

const msgNotFound = "The requested vegetable does not exist."
