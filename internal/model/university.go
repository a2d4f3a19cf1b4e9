package model

type University struct {
	ID   int64  `db:"university_id"`
	Name string `db:"name"`
}
