package database

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const authUserColumns = "id, email, name, password_hash, email_verified, created_at"

// CreateAuthUser hashes the password and inserts a new credential record.
// The caller is responsible for creating the matching profile row.
func (db *DB) CreateAuthUser(email, name, password string) (*AuthUser, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storeErr("failed to hash password", err)
	}

	user := &AuthUser{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO auth_users (id, email, name, password_hash, email_verified, created_at)
		 VALUES ($1, $2, $3, $4, FALSE, $5)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return nil, storeErr("failed to create auth user", err)
	}

	return user, nil
}

// CreateOAuthUser inserts a credential record for an externally authenticated
// identity. The email arrives already verified and no password is stored, so
// password sign-in can never match this record.
func (db *DB) CreateOAuthUser(email, name string) (*AuthUser, error) {
	user := &AuthUser{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          name,
		EmailVerified: true,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO auth_users (id, email, name, password_hash, email_verified, created_at)
		 VALUES ($1, $2, $3, '', TRUE, $4)`,
		user.ID, user.Email, user.Name, user.CreatedAt,
	)
	if err != nil {
		return nil, storeErr("failed to create oauth user", err)
	}

	return user, nil
}

// GetAuthUserByEmail returns the credential record for an email, or nil when
// no such user exists.
func (db *DB) GetAuthUserByEmail(email string) (*AuthUser, error) {
	return db.scanAuthUser(
		`SELECT `+authUserColumns+` FROM auth_users WHERE email = $1`, email)
}

// GetAuthUserByID returns the credential record for an id, or nil when no
// such user exists.
func (db *DB) GetAuthUserByID(id string) (*AuthUser, error) {
	return db.scanAuthUser(
		`SELECT `+authUserColumns+` FROM auth_users WHERE id = $1`, id)
}

func (db *DB) scanAuthUser(query string, arg any) (*AuthUser, error) {
	user := &AuthUser{}
	err := db.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.EmailVerified, &user.CreatedAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get auth user", err)
	}
	return user, nil
}

// MarkEmailVerified flips the verified flag after a successful code exchange.
func (db *DB) MarkEmailVerified(id string) error {
	_, err := db.Exec(`UPDATE auth_users SET email_verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return storeErr("failed to mark email verified", err)
	}
	return nil
}

// VerifyPassword compares a stored hashed password with a plaintext password.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// EnsureProfile creates the denormalized profile row for a user if it does
// not exist yet. Safe to call any number of times.
func (db *DB) EnsureProfile(id, name, email string) error {
	_, err := db.Exec(
		`INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		id, name, email, time.Now().UTC(),
	)
	if err != nil {
		return storeErr("failed to ensure profile", err)
	}
	return nil
}

// GetUserByID returns the profile row for an id, or nil when absent.
func (db *DB) GetUserByID(id string) (*User, error) {
	user := &User{}
	err := db.QueryRow(
		`SELECT id, name, email, created_at FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get user", err)
	}
	return user, nil
}
