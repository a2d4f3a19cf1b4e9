package model

import "time"

type Comment struct {
	ID        int64     `db:"comment_id"`
	PostID    int64     `db:"post_id"`
	AuthorID  string    `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	ParentID  *int64    `db:"parent_id"` // nil for top-level comments
}

// IsReply reports whether the comment is a second-level reply.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CommentNode is a top-level comment with its attached replies.
type CommentNode struct {
	Comment
	Replies []*Comment
}
