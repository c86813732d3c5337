package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/utils"
)

// ErrUsernameExists is returned when signup hits the unique username index.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned when a user cannot be found in the DB.
var ErrUserNotFound = errors.New("user not found")

// UserRepo encapsulates all database queries related to users.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, username, password_hash, name, email, birth_date, gender, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var name, gender sql.NullString
	var birth sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &name, &u.Email, &birth, &gender, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Name = name.String
	u.Gender = gender.String
	if birth.Valid {
		t := utils.DateOnly(birth.Time)
		u.BirthDate = &t
	}
	return u, nil
}

// Create inserts a user with a bcrypt-hashed password and returns the
// new id. The plaintext password never reaches the database.
func (r *UserRepo) Create(ctx context.Context, u model.User, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, name, email, birth_date, gender) VALUES (?,?,?,?,?,?)",
		u.Username, hash, nullStr(u.Name), u.Email, nullDate(u.BirthDate), nullStr(u.Gender))
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by its unique username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// ExistsByUsername reports whether a username is already taken.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username=? LIMIT 1", username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Search finds share recipients by exact id or by case-insensitive
// username substring. The excludeID (normally the caller) is filtered
// out. An empty query lists everyone but the caller.
func (r *UserRepo) Search(ctx context.Context, query string, excludeID uint64) ([]model.User, error) {
	var (
		rows *sql.Rows
		err  error
	)
	query = strings.TrimSpace(query)
	switch {
	case query == "":
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE id<>? ORDER BY id", excludeID)
	case isDigits(query):
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE id=? AND id<>?", query, excludeID)
	default:
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE LOWER(username) LIKE ? AND id<>? ORDER BY id",
			"%"+strings.ToLower(query)+"%", excludeID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
