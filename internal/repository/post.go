package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/unisolve/backend/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(post *model.Post) (int64, error)
	ByID(id int64) (*model.Post, error)
	ByAuthor(authorID string) ([]*model.Post, error)
	Public() ([]*model.Post, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and returns the store-assigned identifier.
// RETURNING keeps the statement portable across SQLite and PostgreSQL.
func (r *postRepository) Create(post *model.Post) (int64, error) {
	query := `INSERT INTO posts (is_private, author_id, title, content, created_at, reply, image)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING post_id`

	var id int64
	err := r.db.QueryRow(query, post.IsPrivate, post.AuthorID, post.Title, post.Content, post.CreatedAt, post.Reply, post.ImageURL).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *postRepository) ByID(id int64) (*model.Post, error) {
	post := &model.Post{}
	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.db.Get(post, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

func (r *postRepository) ByAuthor(authorID string) ([]*model.Post, error) {
	posts := []*model.Post{}
	query := `SELECT * FROM posts WHERE author_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&posts, query, authorID)
	return posts, err
}

func (r *postRepository) Public() ([]*model.Post, error) {
	posts := []*model.Post{}
	query := `SELECT * FROM posts WHERE is_private = FALSE ORDER BY created_at DESC`

	err := r.db.Select(&posts, query)
	return posts, err
}
