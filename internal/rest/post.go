package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/rest/request"
	"github.com/pulseapp/pulse/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// PostHandler  represent the httphandler for post
type PostHandler struct {
	Service domain.PostUsecase
}

func NewPostHandler(svc domain.PostUsecase) *PostHandler {
	return &PostHandler{
		Service: svc,
	}
}

// Create will store the post by given request body
func (h *PostHandler) Create(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	req.AuthorID = userID

	post := req.ToDomain()
	ctx := c.Request.Context()
	if err := h.Service.Create(ctx, &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post))
}

// GetByID will get post by given id
func (h *PostHandler) GetByID(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	post, err := h.Service.GetByID(c.Request.Context(), userID, postID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// Delete will delete the post by given param
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), userID, postID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Feed will fetch the global feed based on given params
func (h *PostHandler) Feed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := h.Service.Feed(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPage(response.NewPostsFromDomain(page.Items), page.Pagination))
}

// FollowingFeed will fetch posts authored by followed users
func (h *PostHandler) FollowingFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := h.Service.FollowingFeed(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPage(response.NewPostsFromDomain(page.Items), page.Pagination))
}

// Like adds a like record if not exists
func (h *PostHandler) Like(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Like(c.Request.Context(), userID, postID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

// Unlike removes a like record if exists
func (h *PostHandler) Unlike(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Unlike(c.Request.Context(), userID, postID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post unliked"})
}

// Likers lists the profiles that liked a post
func (h *PostHandler) Likers(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := h.Service.Likers(c.Request.Context(), userID, postID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPage(response.NewProfilesFromDomain(page.Items), page.Pagination))
}

// Bookmark saves the post for the current user
func (h *PostHandler) Bookmark(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.AddBookmark(c.Request.Context(), userID, postID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post bookmarked"})
}

// Unbookmark removes the save
func (h *PostHandler) Unbookmark(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.RemoveBookmark(c.Request.Context(), userID, postID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed"})
}

// Bookmarks lists the current user's bookmarked posts
func (h *PostHandler) Bookmarks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	page, err := h.Service.Bookmarks(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPage(response.NewPostsFromDomain(page.Items), page.Pagination))
}

// Share records a reshare of the post
func (h *PostHandler) Share(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Share(c.Request.Context(), userID, postID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post shared"})
}

// currentUserID reads the authenticated user id set by the auth middleware.
// Writes the 401 response itself when absent.
func currentUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return userID.(int64), true
}

// pathID parses the :id path parameter. Writes the 404 response itself on
// malformed input.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// pageParams reads the cursor/limit listing query parameters. Range checks
// happen in the service layer.
func pageParams(c *gin.Context) (string, int64) {
	cursor := c.DefaultQuery("cursor", domain.CursorInitial)
	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil {
		limit = domain.PageLimitDefault
	}
	return cursor, limit
}

// getStatusCode will get the code of the error from the usecase layer
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch err {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
