package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseapp/pulse/internal/rest/request"
	"github.com/pulseapp/pulse/internal/rest/response"

	"github.com/pulseapp/pulse/domain"
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

func (h *commentHandler) CreateComment(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	req.PostID = postID
	req.AuthorID = userID

	comment := req.ToDomain()
	ctx := c.Request.Context()
	if err := h.Service.Create(ctx, &comment); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Delete(ctx, userID, commentID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func (h *commentHandler) FetchCommentsByPost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	ctx := c.Request.Context()
	page, err := h.Service.FetchByPost(ctx, userID, postID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPage(response.NewCommentsFromDomain(page.Items), page.Pagination))
}

func (h *commentHandler) LikeComment(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Like(c.Request.Context(), userID, commentID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment liked"})
}

func (h *commentHandler) UnlikeComment(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Unlike(c.Request.Context(), userID, commentID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment unliked"})
}
