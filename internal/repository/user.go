package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/unisolve/backend/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user id already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	Exists(id string) (bool, error)
	UpdateProfile(user *model.User) error
	SoftDelete(id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (user_id, username, email, user_pw, user_nickname, school, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, user.ID, user.Username, user.Email, user.PasswordHash, user.Nickname, user.School, user.CreatedAt)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Exists(id string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE user_id = $1`

	err := r.db.Get(&count, query, id)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// UpdateProfile overwrites all mutable profile fields unconditionally.
// Callers must resend the full profile; absent fields are written as NULL.
func (r *userRepository) UpdateProfile(user *model.User) error {
	query := `UPDATE users SET username = $1, email = $2, user_nickname = $3, school = $4, major = $5, profile_picture = $6
	          WHERE user_id = $7`

	_, err := r.db.Exec(query, user.Username, user.Email, user.Nickname, user.School, user.Major, user.ProfilePicture, user.ID)
	return err
}

// SoftDelete scrubs personal fields, sets the deletion flag, and inactivates
// the user's posts. Both updates run in one transaction so a failure cannot
// leave the user row modified without the post rows, or vice versa.
func (r *userRepository) SoftDelete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	scrub := `UPDATE users
	          SET username = NULL,
	              email = NULL,
	              user_nickname = NULL,
	              user_pw = NULL,
	              school = NULL,
	              major = NULL,
	              profile_picture = NULL,
	              role = NULL,
	              is_deleted = TRUE
	          WHERE user_id = $1`

	result, err := tx.Exec(scrub, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	_, err = tx.Exec(`UPDATE posts SET inactivated = TRUE WHERE author_id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}
