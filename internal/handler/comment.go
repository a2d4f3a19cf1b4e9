package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/unisolve/backend/internal/ctxkeys"
	"github.com/unisolve/backend/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req struct {
		Content  string `json:"content"`
		PostID   int64  `json:"post_id"`
		ParentID *int64 `json:"parent_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	commentID, err := h.commentService.Create(userID, service.CreateCommentInput{
		Content:  req.Content,
		PostID:   req.PostID,
		ParentID: req.ParentID,
	})
	switch {
	case errors.Is(err, service.ErrMissingField):
		writeError(w, http.StatusBadRequest, "Content and post_id are required")
	case errors.Is(err, service.ErrParentNotFound):
		writeError(w, http.StatusNotFound, "Parent comment not found")
	case errors.Is(err, service.ErrInvalidReplyTarget):
		writeError(w, http.StatusBadRequest, "Cannot reply to a child comment")
	case err != nil:
		slog.Error("failed to create comment", "error", err, "user_id", userID, "post_id", req.PostID)
		writeError(w, http.StatusInternalServerError, "Failed to add comment")
	default:
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":    "Comment added successfully!",
			"comment_id": commentID,
		})
	}
}
