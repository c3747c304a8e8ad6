package group

import (
	"time"

	"pantry-app-go/internal/domain/role"
)

const MaxNameLength = 100

type Group struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Member pairs a user with a group. At most one row exists per
// (group, user) and exactly one row per group holds role.Owner.
type Member struct {
	ID       string    `gorm:"type:uuid;primaryKey"`
	GroupID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_group_members_group_user,priority:1"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_group_members_group_user,priority:2;index"`
	Role     role.Role `gorm:"type:varchar(16);not null"`
	JoinedAt time.Time `gorm:"not null"`

	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Member) TableName() string {
	return "group_members"
}

// MemberProfile is a member joined with the user's display name.
type MemberProfile struct {
	ID       string
	GroupID  string
	UserID   string
	Name     string
	Role     role.Role
	JoinedAt time.Time
}

type Invite struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	GroupID   string    `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedBy string    `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`

	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE"`
}

// Expired reports whether the invite is past its lifetime. A non-positive
// ttl means invites never expire.
func (i Invite) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return !now.Before(i.CreatedAt.Add(ttl))
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   string
	Name string
}

type Details struct {
	Group   Group
	Caller  Member
	Members []MemberProfile
	Invites []Invite
}
