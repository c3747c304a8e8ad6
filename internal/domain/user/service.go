package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"pantry-app-go/internal/auth"
)

const (
	minNameLength     = 3
	maxNameLength     = 30
	minPasswordLength = 8
	maxEmailLength    = 255
)

// GroupCacheInvalidator drops cached per-user group lists.
type GroupCacheInvalidator interface {
	InvalidateUsers(ctx context.Context, userIDs ...string)
}

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	groups GroupCacheInvalidator
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repository, hasher auth.PasswordHasher, groups GroupCacheInvalidator) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		groups: groups,
		now:    time.Now,
	}
}

// Register validates in order: name, email shape, email uniqueness, password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}

	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.verifyDummy(ctx, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := Session{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Token:      token,
		CreatedAt:  now,
		LastUsedAt: now,
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// ValidateToken resolves a bearer token to its user and bumps the session's
// last-used time in the same statement that finds it.
func (s *Service) ValidateToken(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.TouchSession(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// Logout ends every session of the user, not only the current one.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.repo.DeleteSessionsByUser(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *Service) NameAvailable(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return false, err
	}
	exists, err := s.repo.NameExists(ctx, name)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	affected, err := s.repo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	if s.groups != nil {
		s.groups.InvalidateUsers(ctx, affected...)
	}
	return nil
}

// verifyDummy runs one hash verification for logins with an unknown email.
func (s *Service) verifyDummy(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(ctx, "dummy-password")
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(ctx, password, s.dummyHash)
	}
}

func validateName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < minNameLength || length > maxNameLength {
		return ErrNameLength
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return ErrNameCharset
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}
