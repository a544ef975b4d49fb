package database

import (
	"time"
)

// CreateVerificationToken stores a single-use email verification token.
func (db *DB) CreateVerificationToken(token, authUserID string, expiresAt time.Time) error {
	_, err := db.Exec(
		`INSERT INTO verification_tokens (token, auth_user_id, expires_at) VALUES ($1, $2, $3)`,
		token, authUserID, expiresAt,
	)
	if err != nil {
		return storeErr("failed to create verification token", err)
	}
	return nil
}

// ConsumeVerificationToken deletes the token and returns the auth user id it
// was issued for. Returns "" when the token is unknown or expired; an expired
// token is still deleted so it cannot be probed again.
func (db *DB) ConsumeVerificationToken(token string, now time.Time) (string, error) {
	tx, err := db.Begin()
	if err != nil {
		return "", storeErr("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var authUserID string
	var expiresAt time.Time
	err = tx.QueryRow(
		`SELECT auth_user_id, expires_at FROM verification_tokens WHERE token = $1`, token,
	).Scan(&authUserID, &expiresAt)
	if isNoRows(err) {
		return "", nil
	}
	if err != nil {
		return "", storeErr("failed to look up verification token", err)
	}

	if _, err := tx.Exec(`DELETE FROM verification_tokens WHERE token = $1`, token); err != nil {
		return "", storeErr("failed to delete verification token", err)
	}

	if err := tx.Commit(); err != nil {
		return "", storeErr("failed to commit transaction", err)
	}

	if now.After(expiresAt) {
		return "", nil
	}
	return authUserID, nil
}
