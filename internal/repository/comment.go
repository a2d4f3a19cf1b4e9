package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/unisolve/backend/internal/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(comment *model.Comment) (int64, error)
	ByID(id int64) (*model.Comment, error)
	ByPost(postID int64) ([]*model.Comment, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) (int64, error) {
	query := `INSERT INTO comments (post_id, author_id, content, created_at, parent_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING comment_id`

	var id int64
	err := r.db.QueryRow(query, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt, comment.ParentID).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *commentRepository) ByID(id int64) (*model.Comment, error) {
	comment := &model.Comment{}
	query := `SELECT * FROM comments WHERE comment_id = $1`

	err := r.db.Get(comment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}

	return comment, err
}

// ByPost returns the post's comments ordered by creation time ascending,
// the order the tree assembly depends on.
func (r *commentRepository) ByPost(postID int64) ([]*model.Comment, error) {
	comments := []*model.Comment{}
	query := `SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at ASC, comment_id ASC`

	err := r.db.Select(&comments, query, postID)
	return comments, err
}
