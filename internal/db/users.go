package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/padraigk/florin/internal/models"
)

func (db *Database) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	res, err := db.db.ExecContext(ctx, `
        INSERT INTO users (email, password_hash, created_at)
        VALUES (?, ?, ?)`, email, passwordHash, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, "insert user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "last insert id")
	}
	return &models.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: now}, nil
}

func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := db.db.QueryRowContext(ctx, `
        SELECT id, email, password_hash, created_at
        FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan user")
	}
	return &user, nil
}
