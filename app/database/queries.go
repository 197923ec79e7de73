package database

import (
	"database/sql"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vibhu927/pg-next-full/app/models"
)

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password against a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password, role, created_at, updated_at
			  FROM users WHERE email = $1`

	err := db.QueryRow(query, strings.ToLower(email)).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password, role, created_at, updated_at
			  FROM users WHERE id = $1`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser registers a new account. The role defaults to USER; only the CLI
// creates ADMIN accounts.
func CreateUser(db *sql.DB, name, email, password, role string) (*models.User, error) {
	email = strings.ToLower(email)

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrEmailTaken
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{Name: name, Email: email, Role: role}
	query := `INSERT INTO users (name, email, password, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	err = db.QueryRow(query, name, email, hashed, role).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}
