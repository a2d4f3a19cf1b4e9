package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/unisolve/backend/internal/model"
)

type UniversityRepository interface {
	All() ([]*model.University, error)
}

type universityRepository struct {
	db *sqlx.DB
}

func NewUniversityRepository(db *sqlx.DB) UniversityRepository {
	return &universityRepository{db: db}
}

func (r *universityRepository) All() ([]*model.University, error) {
	universities := []*model.University{}
	query := `SELECT * FROM universities ORDER BY name ASC`

	err := r.db.Select(&universities, query)
	return universities, err
}
