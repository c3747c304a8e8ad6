package user

import (
	"context"
	"time"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NameExists(ctx context.Context, name string) (bool, error)
	CreateSession(ctx context.Context, session *Session) error
	TouchSession(ctx context.Context, token string, at time.Time) (*Session, error)
	DeleteSessionsByUser(ctx context.Context, userID string) error
	// DeleteUser removes the user, every group they own with its contents,
	// their remaining memberships, recipes and sessions. It returns the IDs
	// of users whose group membership changed as a result.
	DeleteUser(ctx context.Context, userID string) ([]string, error)
}
