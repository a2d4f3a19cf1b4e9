package model

import "time"

type Post struct {
	ID          int64     `db:"post_id"`
	IsPrivate   bool      `db:"is_private"`
	AuthorID    string    `db:"author_id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	CreatedAt   time.Time `db:"created_at"`
	Reply       int       `db:"reply"`
	ImageURL    *string   `db:"image"`
	Inactivated bool      `db:"inactivated"`
}
