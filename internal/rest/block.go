package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/rest/response"
)

type blockHandler struct {
	Service domain.BlockUsecase
}

func NewBlockHandler(svc domain.BlockUsecase) *blockHandler {
	return &blockHandler{
		Service: svc,
	}
}

// Block hides the target user and the current user from each other
func (h *blockHandler) Block(c *gin.Context) {
	blockedID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Block(c.Request.Context(), userID, blockedID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

func (h *blockHandler) Unblock(c *gin.Context) {
	blockedID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Unblock(c.Request.Context(), userID, blockedID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

// Blocked lists the profiles the current user has blocked
func (h *blockHandler) Blocked(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := h.Service.FetchBlocked(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPage(response.NewProfilesFromDomain(page.Items), page.Pagination))
}
