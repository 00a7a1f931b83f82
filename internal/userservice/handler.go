package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("incorrect password")
)

func NewUserService(db *sql.DB) *UserService {
	return &UserService{
		m: newUserModel(db),
	}
}

// RegisterUser creates a member account. The administrator account is never
// created through registration; see EnsureAdmin.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Name:  name,
		Email: email,
		Role:  RoleMember,
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// EnsureAdmin creates the single administrator account from configuration if
// it does not exist yet. The users table enforces at most one admin row.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (*User, error) {
	admin, err := s.m.getAdmin(ctx)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Name:  name,
		Email: email,
		Role:  RoleAdmin,
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// Authenticate checks the email and password pair. An unknown email returns
// ErrNotFound and a hash mismatch returns ErrAuthenticationFailure; the two
// surface as different notices.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserById(ctx, id)
}

// CreateSession issues a fresh session for the user. The plain token goes in
// the cookie; only its hash is stored.
func (s *UserService) CreateSession(ctx context.Context, userID int) (*Session, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	session := newSession(userID, SessionTime)
	if err := s.m.insertSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *UserService) UserBySessionToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	validateSessionToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserBySession(ctx, hashSessionToken(token))
}

// DeleteSession clears the session unconditionally; deleting a token that no
// longer exists is not an error.
func (s *UserService) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	return s.m.deleteSession(ctx, hashSessionToken(token))
}

func (s *UserService) DeleteExpiredSessions(ctx context.Context) error {
	return s.m.deleteExpiredSessions(ctx)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
