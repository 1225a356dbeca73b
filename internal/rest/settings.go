package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/rest/request"
)

type settingsHandler struct {
	Service domain.SettingsProvider
}

func NewSettingsHandler(svc domain.SettingsProvider) *settingsHandler {
	return &settingsHandler{
		Service: svc,
	}
}

func (h *settingsHandler) Get(c *gin.Context) {
	settings, err := h.Service.Get(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *settingsHandler) Update(c *gin.Context) {
	var req request.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.Update(c.Request.Context(), req.ToDomain()); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
