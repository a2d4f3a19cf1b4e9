package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/repository"
)

var (
	ErrParentNotFound     = errors.New("parent comment not found")
	ErrInvalidReplyTarget = errors.New("cannot reply to a child comment")
)

type CommentService struct {
	commentRepository repository.CommentRepository
}

func NewCommentService(commentRepository repository.CommentRepository) *CommentService {
	return &CommentService{commentRepository: commentRepository}
}

type CreateCommentInput struct {
	Content  string
	PostID   int64
	ParentID *int64
}

// Create inserts a comment. Replies are allowed only on top-level comments:
// a parent that is itself a reply is rejected, keeping the thread two levels
// deep.
func (s *CommentService) Create(authorID string, in CreateCommentInput) (int64, error) {
	if in.Content == "" || in.PostID == 0 {
		return 0, ErrMissingField
	}

	if in.ParentID != nil {
		parent, err := s.commentRepository.ByID(*in.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return 0, ErrParentNotFound
			}
			return 0, fmt.Errorf("failed to look up parent comment: %w", err)
		}

		if parent.IsReply() {
			return 0, ErrInvalidReplyTarget
		}
	}

	comment := &model.Comment{
		PostID:    in.PostID,
		AuthorID:  authorID,
		Content:   in.Content,
		CreatedAt: time.Now(),
		ParentID:  in.ParentID,
	}

	id, err := s.commentRepository.Create(comment)
	if err != nil {
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}

	slog.Info("comment created", "comment_id", id, "post_id", in.PostID, "author_id", authorID)
	return id, nil
}
