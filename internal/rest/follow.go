package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/rest/response"
)

type followHandler struct {
	Service domain.FollowUsecase
}

func NewFollowHandler(svc domain.FollowUsecase) *followHandler {
	return &followHandler{
		Service: svc,
	}
}

// Request sends a follow request to the user in the path
func (h *followHandler) Request(c *gin.Context) {
	recipientID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	req, err := h.Service.Request(c.Request.Context(), userID, recipientID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewFollowRequestFromDomain(&req))
}

func (h *followHandler) Accept(c *gin.Context) {
	h.decide(c, h.Service.Accept, "Follow request accepted")
}

func (h *followHandler) Reject(c *gin.Context) {
	h.decide(c, h.Service.Reject, "Follow request rejected")
}

func (h *followHandler) Cancel(c *gin.Context) {
	h.decide(c, h.Service.Cancel, "Follow request cancelled")
}

func (h *followHandler) Unfollow(c *gin.Context) {
	followeeID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Unfollow(c.Request.Context(), userID, followeeID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// Followers lists the profiles following the user in the path
func (h *followHandler) Followers(c *gin.Context) {
	h.listProfiles(c, h.Service.Followers)
}

// Following lists the profiles the user in the path follows
func (h *followHandler) Following(c *gin.Context) {
	h.listProfiles(c, h.Service.Following)
}

// PendingRequests lists follow requests addressed to the current user
func (h *followHandler) PendingRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := h.Service.PendingRequests(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPage(response.NewFollowRequestsFromDomain(page.Items), page.Pagination))
}

func (h *followHandler) decide(c *gin.Context, fn func(ctx context.Context, userID, requestID int64) error, okMessage string) {
	requestID, err := strconv.ParseInt(c.Param("request_id"), 10, 64)
	if err != nil || requestID <= 0 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), userID, requestID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": okMessage})
}

func (h *followHandler) listProfiles(c *gin.Context, fn func(ctx context.Context, userID int64, cursor string, limit int64) (domain.Page[domain.Profile], error)) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := fn(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPage(response.NewProfilesFromDomain(page.Items), page.Pagination))
}
