package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/repository"
	"github.com/unisolve/backend/internal/storage"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrForbidden     = errors.New("access forbidden")
	ErrInvalidBase64 = errors.New("invalid base64 image data")
)

type PostService struct {
	postRepository    repository.PostRepository
	commentRepository repository.CommentRepository
	storage           storage.Storage
}

func NewPostService(postRepository repository.PostRepository, commentRepository repository.CommentRepository, storage storage.Storage) *PostService {
	return &PostService{
		postRepository:    postRepository,
		commentRepository: commentRepository,
		storage:           storage,
	}
}

// CreatePostInput carries the question fields. An image arrives either as a
// raw file (native clients) or as a Base64 string (web clients); the file
// takes precedence when both are present.
type CreatePostInput struct {
	IsPrivate     bool
	Title         string
	Content       string
	ImageFile     io.Reader
	ImageFilename string
	ImageBase64   string
}

// Create uploads the image (if any) and persists the post. A failed upload
// aborts the whole operation; the post is not created.
func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (int64, error) {
	if in.Title == "" || in.Content == "" {
		return 0, ErrMissingField
	}

	var imageURL *string
	switch {
	case in.ImageFile != nil:
		url, err := s.storage.Upload(ctx, in.ImageFilename, in.ImageFile)
		if err != nil {
			return 0, err
		}
		imageURL = &url
	case in.ImageBase64 != "":
		data, err := decodeBase64Image(in.ImageBase64)
		if err != nil {
			return 0, err
		}
		filename := fmt.Sprintf("image_%s.jpg", in.Title)
		url, err := s.storage.Upload(ctx, filename, strings.NewReader(string(data)))
		if err != nil {
			return 0, err
		}
		imageURL = &url
	}

	post := &model.Post{
		IsPrivate: in.IsPrivate,
		AuthorID:  authorID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: time.Now(),
		Reply:     0,
		ImageURL:  imageURL,
	}

	id, err := s.postRepository.Create(post)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	slog.Info("post created", "post_id", id, "author_id", authorID, "private", in.IsPrivate)
	return id, nil
}

// History returns the caller's own posts regardless of visibility.
func (s *PostService) History(userID string) ([]*model.Post, error) {
	return s.postRepository.ByAuthor(userID)
}

// Community returns all public posts.
func (s *PostService) Community() ([]*model.Post, error) {
	return s.postRepository.Public()
}

// Get fetches a post by identifier.
func (s *PostService) Get(postID int64) (*model.Post, error) {
	post, err := s.postRepository.ByID(postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// CommentTree loads the post's comments in timestamp order and assembles the
// two-level tree. A parentless comment becomes a top-level node; a parented
// comment is appended to the reply list of its already-seen parent. Rows
// whose parent is missing from the map (orphans, or replies-to-replies from
// legacy data) are skipped and excluded from the count.
func (s *PostService) CommentTree(postID int64) ([]*model.CommentNode, int, error) {
	comments, err := s.commentRepository.ByPost(postID)
	if err != nil {
		return nil, 0, err
	}

	nodes := []*model.CommentNode{}
	byID := make(map[int64]*model.CommentNode)
	count := 0

	for _, c := range comments {
		if c.ParentID == nil {
			node := &model.CommentNode{Comment: *c, Replies: []*model.Comment{}}
			nodes = append(nodes, node)
			byID[c.ID] = node
			count++
			continue
		}

		parent, ok := byID[*c.ParentID]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, c)
		count++
	}

	return nodes, count, nil
}

// decodeBase64Image strips an optional data-URI prefix (everything up to and
// including the first comma) and decodes the remainder.
func decodeBase64Image(data string) ([]byte, error) {
	if idx := strings.Index(data, ","); idx >= 0 {
		data = data[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBase64, err)
	}

	return decoded, nil
}
