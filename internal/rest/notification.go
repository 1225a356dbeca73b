package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/rest/response"
)

type notificationHandler struct {
	Service domain.NotificationUsecase
}

func NewNotificationHandler(svc domain.NotificationUsecase) *notificationHandler {
	return &notificationHandler{
		Service: svc,
	}
}

// Fetch lists the current user's notifications, newest first
func (h *notificationHandler) Fetch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := h.Service.Fetch(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPage(response.NewNotificationsFromDomain(page.Items), page.Pagination))
}

func (h *notificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.MarkRead(c.Request.Context(), userID, id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

func (h *notificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

func (h *notificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.Service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
