package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/otlink-il/otlink-backend/internal/database"
	"github.com/otlink-il/otlink-backend/internal/models"
)

// CreateUser inserts a new account. Role stays empty until role selection.
func CreateUser(name, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}

	_, err := database.PostgresDB.Exec(`
		INSERT INTO users (id, created_at, updated_at, name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.CreatedAt, user.UpdatedAt, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail looks up an account by email (case-insensitive).
// Returns (nil, nil) when no account exists.
func GetUserByEmail(email string) (*models.User, error) {
	return scanUser(database.PostgresDB.QueryRow(`
		SELECT id, created_at, updated_at, name, email, password_hash, role, ot_profile_id
		FROM users WHERE LOWER(email) = $1
	`, strings.ToLower(strings.TrimSpace(email))))
}

// GetUserByID looks up an account by ID. Returns (nil, nil) when not found.
func GetUserByID(userID uuid.UUID) (*models.User, error) {
	return scanUser(database.PostgresDB.QueryRow(`
		SELECT id, created_at, updated_at, name, email, password_hash, role, ot_profile_id
		FROM users WHERE id = $1
	`, userID))
}

// SetUserRole assigns the role and, for OT accounts, the linked profile ID.
func SetUserRole(userID uuid.UUID, role, otProfileID string) error {
	var profileID interface{}
	if otProfileID != "" {
		profileID = otProfileID
	}
	_, err := database.PostgresDB.Exec(`
		UPDATE users SET role = $2, ot_profile_id = $3, updated_at = NOW() WHERE id = $1
	`, userID, role, profileID)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var role, otProfileID sql.NullString
	err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Name,
		&user.Email, &user.PasswordHash, &role, &otProfileID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.Role = role.String
	user.OTProfileID = otProfileID.String
	return &user, nil
}
