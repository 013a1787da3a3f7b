package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showcase/backend/internal/service"
)

type BlogHandler struct {
	blogService *service.BlogService
}

type commentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) ListPosts(c *gin.Context) {
	posts, apiErr := h.blogService.ListPosts(c.DefaultQuery("post", service.FilterAll))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *BlogHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.blogService.Search(c.Query("q")))
}

func (h *BlogHandler) Comments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	comments, apiErr := h.blogService.Comments(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *BlogHandler) AddComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, apiErr := h.blogService.AddComment(c.Request.Context(), userID, c.Param("postID"), req.Author, req.Text)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
		"message": "Comment added successfully!",
	})
}

func (h *BlogHandler) Share(c *gin.Context) {
	links, apiErr := h.blogService.ShareLinks(c.Param("postID"), c.Query("url"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}
