package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/unisolve/backend/internal/ctxkeys"
	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/service"
	"github.com/unisolve/backend/internal/storage"
)

const maxUploadMemory = 32 << 20 // 32 MB

type PostHandler struct {
	postService *service.PostService
	authService *service.AuthService
	loc         *time.Location
}

func NewPostHandler(postService *service.PostService, authService *service.AuthService, loc *time.Location) *PostHandler {
	return &PostHandler{
		postService: postService,
		authService: authService,
		loc:         loc,
	}
}

// Create handles POST /questions. The body is form-encoded; "image" is either
// an uploaded file (native clients) or a Base64 string (web clients).
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		// Fall back to an ordinary form body without a file part
		err = r.ParseForm()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form body")
			return
		}
	}

	in := service.CreatePostInput{
		IsPrivate: parseBoolField(r.FormValue("is_private")),
		Title:     r.FormValue("title"),
		Content:   r.FormValue("content"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer func() { _ = file.Close() }()
		in.ImageFile = file
		in.ImageFilename = header.Filename
	} else {
		in.ImageBase64 = r.FormValue("image")
	}

	postID, err := h.postService.Create(r.Context(), userID, in)
	if err != nil {
		h.writeCreateError(w, err, userID)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Question added successfully!",
		"postId":  postID,
	})
}

func (h *PostHandler) writeCreateError(w http.ResponseWriter, err error, userID string) {
	var uploadErr *storage.UploadError
	switch {
	case errors.Is(err, service.ErrMissingField):
		writeError(w, http.StatusBadRequest, "Title and content are required!")
	case errors.Is(err, service.ErrInvalidBase64):
		writeError(w, http.StatusBadRequest, "Invalid Base64 image data")
	case errors.As(err, &uploadErr):
		code := http.StatusBadRequest
		if uploadErr.StatusCode == 0 {
			code = http.StatusBadGateway
		}
		writeJSON(w, code, map[string]any{
			"status":      "error",
			"message":     "Failed to upload image",
			"details":     uploadErr.Details,
			"status_code": uploadErr.StatusCode,
		})
	default:
		slog.Error("failed to create post", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to insert question")
	}
}

// History handles GET /history: the caller's own posts, any visibility.
func (h *PostHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	posts, err := h.postService.History(userID)
	if err != nil {
		slog.Error("failed to load history", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	data := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		data = append(data, map[string]any{
			"id":          p.ID,
			"user":        p.AuthorID,
			"timestamp":   formatTime(p.CreatedAt, h.loc),
			"private":     p.IsPrivate,
			"reply":       p.Reply,
			"description": p.Content,
			"title":       p.Title,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Data retrieved successfully",
		"data":    data,
	})
}

// Community handles GET /community: all public posts.
func (h *PostHandler) Community(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.Community()
	if err != nil {
		slog.Error("failed to load community posts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	data := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		data = append(data, map[string]any{
			"id":          p.ID,
			"questioner":  p.AuthorID,
			"title":       p.Title,
			"description": p.Content,
			"timestamp":   formatTime(p.CreatedAt, h.loc),
			"reply":       p.Reply,
		})
	}

	writeJSON(w, http.StatusOK, data)
}

// Get handles GET /post/{id}. A token is only required, and only checked,
// when the post is private; then the caller must be its author.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := h.postService.Get(postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}
		slog.Error("failed to load post", "error", err, "post_id", postID)
		writeError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}

	if post.IsPrivate {
		viewerID, err := h.authService.UserIDFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, authErrorMessage(err))
			return
		}
		if viewerID != post.AuthorID {
			writeError(w, http.StatusForbidden, "Access forbidden")
			return
		}
	}

	nodes, count, err := h.postService.CommentTree(postID)
	if err != nil {
		slog.Error("failed to load comments", "error", err, "post_id", postID)
		writeError(w, http.StatusInternalServerError, "Failed to load comments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":             post.ID,
		"title":          post.Title,
		"description":    post.Content,
		"author_id":      post.AuthorID,
		"timestamp":      formatTime(post.CreatedAt, h.loc),
		"is_private":     post.IsPrivate,
		"image":          post.ImageURL,
		"comments":       h.commentTreeJSON(nodes),
		"comments_count": count,
	})
}

func (h *PostHandler) commentTreeJSON(nodes []*model.CommentNode) []map[string]any {
	out := make([]map[string]any, 0, len(nodes))
	for _, node := range nodes {
		replies := make([]map[string]any, 0, len(node.Replies))
		for _, reply := range node.Replies {
			replies = append(replies, h.commentJSON(reply, nil))
		}
		out = append(out, h.commentJSON(&node.Comment, replies))
	}
	return out
}

func (h *PostHandler) commentJSON(c *model.Comment, replies []map[string]any) map[string]any {
	m := map[string]any{
		"comment_id": c.ID,
		"content":    c.Content,
		"author_id":  c.AuthorID,
		"created_at": formatTime(c.CreatedAt, h.loc),
		"parent_id":  c.ParentID,
	}
	if replies != nil {
		m["replies"] = replies
	}
	return m
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingToken):
		return "Authorization token is missing!"
	case errors.Is(err, service.ErrExpiredToken):
		return "Token has expired!"
	default:
		return "Invalid token!"
	}
}

func parseBoolField(v string) bool {
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true")
}
