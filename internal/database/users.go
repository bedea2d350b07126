// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account row.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUser inserts an account. The password must already be hashed.
// Returns ErrUserExists when the username is taken.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash, role string) (user *User, err error) {
	defer db.observe("create_user", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if role == "" {
		role = RoleUser
	}
	u := &User{Username: username, PasswordHash: passwordHash, Role: role, CreatedAt: db.now()}

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var taken bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE username = ?)`, username).Scan(&taken); err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return ErrUserExists
		}
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
			u.Username, u.PasswordHash, u.Role, u.CreatedAt).Scan(&u.ID); err != nil {
			if isUniqueViolation(err) {
				return ErrUserExists
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername returns the account with the given username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return db.getUser(ctx, "user_by_username", `WHERE username = ?`, username)
}

// GetUserByID returns the account with the given ID.
func (db *DB) GetUserByID(ctx context.Context, id int) (*User, error) {
	return db.getUser(ctx, "user_by_id", `WHERE id = ?`, id)
}

func (db *DB) getUser(ctx context.Context, operation, where string, arg any) (user *User, err error) {
	defer db.observe(operation, time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	u := &User{}
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users `+where, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Duplicate key") || strings.Contains(msg, "violates unique constraint")
}
