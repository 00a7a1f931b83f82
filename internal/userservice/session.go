package userservice

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

func hashSessionToken(token string) []byte {
	hash := sha256.Sum256([]byte(token))
	return hash[:]
}

func newSession(userID int, ttl time.Duration) *Session {
	s := &Session{
		Plain:  uuid.NewString(),
		UserID: userID,
		Expiry: time.Now().Add(ttl),
	}
	s.Hash = hashSessionToken(s.Plain)

	return s
}

func (m *DBModel) insertSession(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO sessions (token_hash, user_id, expiry)
		VALUES ($1, $2, $3)`

	_, err := m.db.ExecContext(ctx, query, s.Hash, s.UserID, s.Expiry)
	return err
}

// getUserBySession joins the sessions table so that expired sessions resolve
// to no user at all.
func (m *DBModel) getUserBySession(ctx context.Context, hash []byte) (*User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.role, u.created_at, u.version
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.token_hash = $1 AND s.expiry > $2`

	var u User

	err := m.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) deleteSession(ctx context.Context, hash []byte) error {
	query := `
		DELETE FROM sessions
		WHERE token_hash = $1`

	_, err := m.db.ExecContext(ctx, query, hash)
	return err
}

func (m *DBModel) deleteExpiredSessions(ctx context.Context) error {
	query := `
		DELETE FROM sessions
		WHERE expiry <= $1`

	_, err := m.db.ExecContext(ctx, query, time.Now())
	return err
}
