package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/perm"
	"github.com/threadhouse/threadhouse/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenExpired       = errors.New("token expired")
)

const bcryptCost = 12

type Service struct {
	store    store.Store
	tokenTTL time.Duration
}

func NewService(st store.Store, tokenTTL time.Duration) *Service {
	return &Service{store: st, tokenTTL: tokenTTL}
}

// Register creates a user with a bcrypt-hashed password and issues a first
// token. Duplicate usernames surface as store.ErrDuplicateUsername.
func (s *Service) Register(ctx context.Context, username, password string) (model.User, model.Token, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.User{}, model.Token{}, err
	}
	user := model.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	id, err := s.store.CreateUser(ctx, &user)
	if err != nil {
		return model.User{}, model.Token{}, err
	}
	user.ID = id

	token, err := s.issueToken(ctx, id)
	if err != nil {
		return model.User{}, model.Token{}, err
	}
	return user, token, nil
}

// Login verifies the password and issues a fresh bearer token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (model.Token, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Token{}, ErrInvalidCredentials
		}
		return model.Token{}, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.Token{}, ErrInvalidCredentials
	}
	return s.issueToken(ctx, user.ID)
}

// Authenticate resolves a bearer token to an identity.
func (s *Service) Authenticate(ctx context.Context, bearer string) (perm.Identity, error) {
	token, err := s.store.GetToken(ctx, bearer)
	if err != nil {
		return perm.Identity{}, err
	}
	if time.Now().After(token.ExpiresAt) {
		return perm.Identity{}, ErrTokenExpired
	}
	user, err := s.store.GetUser(ctx, token.UserID)
	if err != nil {
		return perm.Identity{}, err
	}
	return perm.Identity{UserID: user.ID, Username: user.Username}, nil
}

func (s *Service) issueToken(ctx context.Context, userID int64) (model.Token, error) {
	value, err := randomToken(32)
	if err != nil {
		return model.Token{}, err
	}
	token := model.Token{
		Token:     value,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.store.CreateToken(ctx, token); err != nil {
		return model.Token{}, err
	}
	return token, nil
}

func randomToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
