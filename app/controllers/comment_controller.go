package controllers

import (
	"net/http"

	"simpleblog/app/models"
	"simpleblog/app/services"
	"simpleblog/pkg/logger"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index lists the comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comments, err := cc.commentService.ListComments(r.Context(), postID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Show returns one comment of a post
func (cc *CommentController) Show(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	comment, err := cc.commentService.GetComment(r.Context(), postID, commentID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Create adds a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var in models.CommentInput
	if err := decodeJSON(r, &in); err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), postID, in)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("comment created", "post_id", postID, "comment_id", comment.ID)
	sendJSON(w, http.StatusCreated, comment)
}

// Update replaces author and content of a comment
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	var in models.CommentInput
	if err := decodeJSON(r, &in); err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := cc.commentService.UpdateComment(r.Context(), postID, commentID, in)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Delete removes a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	if err := cc.commentService.DeleteComment(r.Context(), postID, commentID); err != nil {
		sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// commentPath reads both ids and writes the 422 itself on failure.
func commentPath(w http.ResponseWriter, r *http.Request) (postID, commentID int, ok bool) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return 0, 0, false
	}
	commentID, err = pathID(r, "comment_id")
	if err != nil {
		sendError(w, http.StatusUnprocessableEntity, err.Error())
		return 0, 0, false
	}
	return postID, commentID, true
}
