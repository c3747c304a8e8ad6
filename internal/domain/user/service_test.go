package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pantry-app-go/internal/auth"
)

type fakeUserRepo struct {
	users    map[string]*User
	sessions map[string]*Session
	deleted  []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) NameExists(ctx context.Context, name string) (bool, error) {
	for _, user := range r.users {
		if user.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CreateSession(ctx context.Context, session *Session) error {
	copied := *session
	r.sessions[session.Token] = &copied
	return nil
}

func (r *fakeUserRepo) TouchSession(ctx context.Context, token string, at time.Time) (*Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.LastUsedAt = at
	copied := *session
	return &copied, nil
}

func (r *fakeUserRepo) DeleteSessionsByUser(ctx context.Context, userID string) error {
	for token, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, userID string) ([]string, error) {
	if _, ok := r.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	delete(r.users, userID)
	_ = r.DeleteSessionsByUser(ctx, userID)
	r.deleted = append(r.deleted, userID)
	return []string{userID, "co-member"}, nil
}

func (r *fakeUserRepo) countSessions(userID string) int {
	count := 0
	for _, session := range r.sessions {
		if session.UserID == userID {
			count++
		}
	}
	return count
}

type recordingInvalidator struct {
	userIDs []string
}

func (r *recordingInvalidator) InvalidateUsers(ctx context.Context, userIDs ...string) {
	r.userIDs = append(r.userIDs, userIDs...)
}

func newTestService(repo Repository) *Service {
	hasher := auth.NewArgon2Hasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1})
	return NewService(repo, hasher, nil)
}

func registerAlice(t *testing.T, svc *Service) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{Name: "alice", Email: "alice@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return user
}

func TestRegisterSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{Name: "  alice ", Email: " Alice@Example.com ", Password: "password1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Name != "alice" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "password1" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}
	if _, ok := repo.users[user.ID]; !ok {
		t.Fatalf("expected user stored")
	}
}

func TestRegisterNameBoundaries(t *testing.T) {
	tests := []struct {
		name string
		want error
	}{
		{name: "ab", want: ErrNameLength},
		{name: strings.Repeat("a", 31), want: ErrNameLength},
		{name: "abc"},
		{name: strings.Repeat("b", 30)},
		{name: "bad name", want: ErrNameCharset},
		{name: "bad!", want: ErrNameCharset},
		{name: "ok_name-1"},
	}

	for i, tt := range tests {
		repo := newFakeUserRepo()
		svc := newTestService(repo)
		email := strings.Repeat("x", i+1) + "@example.com"
		_, err := svc.Register(context.Background(), RegisterInput{Name: tt.name, Email: email, Password: "password1"})
		if tt.want == nil {
			if err != nil {
				t.Fatalf("name %q: expected no error, got %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Fatalf("name %q: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestRegisterValidationPrecedence(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "x", Email: "alice@example.com", Password: "short"})
	if !errors.Is(err, ErrNameLength) {
		t.Fatalf("expected name error first, got %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterInput{Name: "bob", Email: "alice@example.com", Password: "short"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email error before password, got %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterInput{Name: "bob", Email: "bob@example.com", Password: "short"})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	for _, email := range []string{"", "alice", "@example.com", "alice@", "al ice@example.com"} {
		_, err := svc.Register(context.Background(), RegisterInput{Name: "alice", Email: email, Password: "password1"})
		if !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "alice2", Email: "ALICE@example.com", Password: "password1"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if err.Error() != "Email is already in use." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	user := registerAlice(t, svc)

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(context.Background(), "nobody@example.com", "password1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	session, err := svc.Login(context.Background(), "Alice@Example.com", "password1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.UserID != user.ID {
		t.Fatalf("expected session for %s, got %s", user.ID, session.UserID)
	}
	if len(session.Token) < 40 {
		t.Fatalf("expected long random token, got %q", session.Token)
	}
}

func TestValidateTokenTouchesSession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	user := registerAlice(t, svc)

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	session, err := svc.Login(context.Background(), "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	later := start.Add(time.Hour)
	svc.now = func() time.Time { return later }
	got, err := svc.ValidateToken(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
	if !repo.sessions[session.Token].LastUsedAt.Equal(later) {
		t.Fatalf("expected last used %v, got %v", later, repo.sessions[session.Token].LastUsedAt)
	}

	if _, err := svc.ValidateToken(context.Background(), "missing"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.ValidateToken(context.Background(), "  "); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for blank token, got %v", err)
	}
}

func TestLogoutClearsAllSessionsAndIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	user := registerAlice(t, svc)

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), "alice@example.com", "password1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if repo.countSessions(user.ID) != 3 {
		t.Fatalf("expected 3 sessions, got %d", repo.countSessions(user.ID))
	}

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("expected second logout to succeed, got %v", err)
	}
	if repo.countSessions(user.ID) != 0 {
		t.Fatalf("expected no sessions, got %d", repo.countSessions(user.ID))
	}
}

func TestNameAvailable(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	registerAlice(t, svc)

	available, err := svc.NameAvailable(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if available {
		t.Fatalf("expected alice to be taken")
	}

	available, err = svc.NameAvailable(context.Background(), "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !available {
		t.Fatalf("expected bob to be available")
	}

	if _, err := svc.NameAvailable(context.Background(), "b"); !errors.Is(err, ErrNameLength) {
		t.Fatalf("expected ErrNameLength, got %v", err)
	}
}

func TestDeleteAccountInvalidatesGroupCache(t *testing.T) {
	repo := newFakeUserRepo()
	invalidator := &recordingInvalidator{}
	hasher := auth.NewArgon2Hasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1})
	svc := NewService(repo, hasher, invalidator)
	user := registerAlice(t, svc)

	if err := svc.DeleteAccount(context.Background(), user.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.users[user.ID]; ok {
		t.Fatalf("expected user deleted")
	}
	if len(invalidator.userIDs) != 2 {
		t.Fatalf("expected 2 invalidated users, got %v", invalidator.userIDs)
	}

	if err := svc.DeleteAccount(context.Background(), user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
