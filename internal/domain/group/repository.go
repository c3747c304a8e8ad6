package group

import (
	"context"

	"pantry-app-go/internal/domain/actionlog"
	"pantry-app-go/internal/domain/role"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// LockGroup loads the group and holds a row lock until the transaction ends.
	LockGroup(ctx context.Context, groupID string) (*Group, error)
	GetGroup(ctx context.Context, groupID string) (*Group, error)
	ListGroupsByUser(ctx context.Context, userID string) ([]Group, error)
	CreateGroup(ctx context.Context, group *Group) error
	UpdateGroupName(ctx context.Context, groupID, name string) error
	// DeleteGroup removes the group with its log entries, items, invites and members.
	DeleteGroup(ctx context.Context, groupID string) error

	GetMember(ctx context.Context, groupID, userID string) (*Member, error)
	GetMemberProfile(ctx context.Context, groupID, userID string) (*MemberProfile, error)
	ListMembers(ctx context.Context, groupID string) ([]MemberProfile, error)
	AddMember(ctx context.Context, member *Member) error
	UpdateMemberRole(ctx context.Context, groupID, userID string, r role.Role) error
	DeleteMember(ctx context.Context, groupID, userID string) error
	GetUserName(ctx context.Context, userID string) (string, error)

	CreateInvite(ctx context.Context, invite *Invite) error
	GetInviteByCode(ctx context.Context, code string) (*Invite, error)
	ListInvites(ctx context.Context, groupID string) ([]Invite, error)
	DeleteInvite(ctx context.Context, groupID, inviteID string) (bool, error)
	// ConsumeInvite deletes the invite and reports whether this call removed it.
	ConsumeInvite(ctx context.Context, inviteID string) (bool, error)
	IsCodeTaken(ctx context.Context, code string) (bool, error)

	AppendLog(ctx context.Context, entry *actionlog.Entry) error
}
