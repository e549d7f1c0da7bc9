package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	flashSuccess = "success"
	flashDanger  = "danger"
)

type flashMessage struct {
	Category string
	Message  string
}

// flash queues a message for the next rendered page.
func (h *Handler) flash(c *gin.Context, category, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, category)
	if err := sess.Save(); err != nil {
		h.Log.Error("failed to save session", "error", err)
	}
}

// render wraps c.HTML and hands pending flash messages to every template.
func (h *Handler) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	sess := sessions.Default(c)
	var flashes []flashMessage
	for _, category := range []string{flashSuccess, flashDanger} {
		for _, f := range sess.Flashes(category) {
			if msg, ok := f.(string); ok {
				flashes = append(flashes, flashMessage{Category: category, Message: msg})
			}
		}
	}
	if len(flashes) > 0 {
		if err := sess.Save(); err != nil {
			h.Log.Error("failed to save session", "error", err)
		}
	}
	data["Flashes"] = flashes

	c.HTML(status, tmpl, data)
}
