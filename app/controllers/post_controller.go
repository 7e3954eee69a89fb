package controllers

import (
	"net/http"

	"simpleblog/app/models"
	"simpleblog/app/services"
	"simpleblog/pkg/logger"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing posts, one page at a time
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", models.DefaultPage)
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", models.DefaultLimit)
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	posts, err := pc.postService.ListPosts(r.Context(), models.PageRequest{Page: page, Limit: limit})
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeJSON(r, &in); err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), in)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("post created", "post_id", post.ID)
	sendJSON(w, http.StatusCreated, post)
}

// Update handles replacing title and body of an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var in models.PostInput
	if err := decodeJSON(r, &in); err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), id, in)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		sendServiceError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("post deleted", "post_id", id)
	w.WriteHeader(http.StatusNoContent)
}
