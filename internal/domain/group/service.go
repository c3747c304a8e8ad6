package group

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"pantry-app-go/internal/auth"
	"pantry-app-go/internal/domain/actionlog"
	"pantry-app-go/internal/domain/authz"
	"pantry-app-go/internal/domain/role"
)

const inviteCodeAttempts = 10

type Service struct {
	repo      Repository
	cache     Cache
	cacheTTL  time.Duration
	policy    authz.Policy
	inviteTTL time.Duration
	now       func() time.Time
}

type Option func(*Service)

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
		s.cacheTTL = ttl
	}
}

func WithPolicy(policy authz.Policy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithInviteTTL makes invites older than ttl unclaimable. Zero disables expiry.
func WithInviteTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.inviteTTL = ttl
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		cache:  noopCache{},
		policy: authz.DefaultPolicy(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateGroup(ctx context.Context, actor Actor, name string) (*Group, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	group := Group{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateGroup(ctx, &group); err != nil {
			return err
		}

		owner := Member{
			ID:       uuid.NewString(),
			GroupID:  group.ID,
			UserID:   actor.ID,
			Role:     role.Owner,
			JoinedAt: now,
		}
		if err := tx.AddMember(ctx, &owner); err != nil {
			return err
		}

		return s.appendLog(ctx, tx, group.ID, actionlog.GroupCreated(name))
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateUsers(ctx, actor.ID)
	return &group, nil
}

func (s *Service) ListGroups(ctx context.Context, userID string) ([]Group, error) {
	if groups, ok := s.cache.GetByUserID(ctx, userID); ok {
		if groups == nil {
			groups = []Group{}
		}
		return groups, nil
	}

	groups, err := s.repo.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []Group{}
	}

	s.cache.SetByUserID(ctx, userID, groups, s.cacheTTL)
	return groups, nil
}

// Access returns the caller's membership if the policy allows action on the group.
func (s *Service) Access(ctx context.Context, userID, groupID string, action authz.Action) (*Member, error) {
	return s.authorize(ctx, s.repo, userID, groupID, authz.Check{Action: action})
}

func (s *Service) GetGroup(ctx context.Context, userID, groupID string) (*Group, error) {
	if _, err := s.Access(ctx, userID, groupID, authz.ActionViewGroup); err != nil {
		return nil, err
	}
	return s.getGroup(ctx, s.repo, groupID)
}

// Details loads the group with its members, and its invites when the caller
// may manage them.
func (s *Service) Details(ctx context.Context, userID, groupID string) (*Details, error) {
	caller, err := s.Access(ctx, userID, groupID, authz.ActionViewGroup)
	if err != nil {
		return nil, err
	}

	details := Details{Caller: *caller, Invites: []Invite{}}
	canManageInvites := s.policy.Authorize(authz.Check{Caller: caller.Role, Action: authz.ActionManageInvites}) == nil

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		group, err := s.getGroup(gctx, s.repo, groupID)
		if err != nil {
			return err
		}
		details.Group = *group
		return nil
	})
	g.Go(func() error {
		members, err := s.repo.ListMembers(gctx, groupID)
		if err != nil {
			return err
		}
		details.Members = members
		return nil
	})
	if canManageInvites {
		g.Go(func() error {
			invites, err := s.repo.ListInvites(gctx, groupID)
			if err != nil {
				return err
			}
			details.Invites = invites
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &details, nil
}

func (s *Service) RenameGroup(ctx context.Context, actor Actor, groupID, name string) (*Group, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	var result Group
	var memberIDs []string
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		group, err := s.lockAndAuthorize(ctx, tx, actor.ID, groupID, authz.Check{Action: authz.ActionRenameGroup})
		if err != nil {
			return err
		}

		if err := tx.UpdateGroupName(ctx, groupID, name); err != nil {
			return err
		}
		if err := s.appendLog(ctx, tx, groupID, actionlog.GroupRenamed(name)); err != nil {
			return err
		}

		memberIDs, err = listMemberIDs(ctx, tx, groupID)
		if err != nil {
			return err
		}

		group.Name = name
		group.UpdatedAt = s.now().UTC()
		result = *group
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateUsers(ctx, memberIDs...)
	return &result, nil
}

func (s *Service) DeleteGroup(ctx context.Context, actor Actor, groupID string) error {
	var memberIDs []string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := s.lockAndAuthorize(ctx, tx, actor.ID, groupID, authz.Check{Action: authz.ActionDeleteGroup}); err != nil {
			return err
		}

		var err error
		memberIDs, err = listMemberIDs(ctx, tx, groupID)
		if err != nil {
			return err
		}

		return tx.DeleteGroup(ctx, groupID)
	})
	if err != nil {
		return err
	}

	s.InvalidateUsers(ctx, memberIDs...)
	return nil
}

func (s *Service) ListMembers(ctx context.Context, userID, groupID string) ([]MemberProfile, error) {
	if _, err := s.Access(ctx, userID, groupID, authz.ActionViewGroup); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, groupID)
}

// AddMember adds an existing user directly. The initial role may not be owner.
func (s *Service) AddMember(ctx context.Context, actor Actor, groupID, userID, roleName string) (*MemberProfile, error) {
	newRole, err := role.Parse(roleName)
	if err != nil {
		return nil, err
	}

	var result MemberProfile
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := s.lockAndAuthorize(ctx, tx, actor.ID, groupID, authz.Check{Action: authz.ActionAddMember, NewRole: newRole}); err != nil {
			return err
		}

		name, err := tx.GetUserName(ctx, userID)
		if err != nil {
			return err
		}

		_, err = tx.GetMember(ctx, groupID, userID)
		switch {
		case err == nil:
			return ErrAlreadyMember
		case !errors.Is(err, ErrMemberNotFound):
			return err
		}

		member := Member{
			ID:       uuid.NewString(),
			GroupID:  groupID,
			UserID:   userID,
			Role:     newRole,
			JoinedAt: s.now().UTC(),
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}
		if err := s.appendLog(ctx, tx, groupID, actionlog.MemberAdded(actor.Name, name)); err != nil {
			return err
		}

		result = toProfile(member, name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateUsers(ctx, userID)
	return &result, nil
}

// ChangeRole assigns roleName to the member. Assigning owner transfers
// ownership: the caller becomes a member in the same transaction.
func (s *Service) ChangeRole(ctx context.Context, actor Actor, groupID, userID, roleName string) (*MemberProfile, error) {
	newRole, err := role.Parse(roleName)
	if err != nil {
		return nil, err
	}

	var result MemberProfile
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		group, err := tx.LockGroup(ctx, groupID)
		if err != nil {
			return notFoundAsGroup(err)
		}
		caller, err := s.callerMember(ctx, tx, actor.ID, groupID)
		if err != nil {
			return err
		}

		self := userID == actor.ID
		if self {
			return s.policy.Authorize(authz.Check{Caller: caller.Role, Action: authz.ActionChangeRole, Self: true, Target: caller.Role, NewRole: newRole})
		}

		target, err := tx.GetMemberProfile(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if err := s.policy.Authorize(authz.Check{Caller: caller.Role, Action: authz.ActionChangeRole, Target: target.Role, NewRole: newRole}); err != nil {
			return err
		}

		if target.Role == newRole {
			result = *target
			return nil
		}

		if newRole == role.Owner {
			// Demote first: at most one owner row may exist after each statement.
			if err := tx.UpdateMemberRole(ctx, groupID, caller.UserID, role.Member); err != nil {
				return err
			}
			if err := tx.UpdateMemberRole(ctx, groupID, target.UserID, role.Owner); err != nil {
				return err
			}
			if err := s.appendLog(ctx, tx, groupID, actionlog.OwnershipTransferred(target.Name, group.Name)); err != nil {
				return err
			}
		} else {
			if err := tx.UpdateMemberRole(ctx, groupID, target.UserID, newRole); err != nil {
				return err
			}
			if err := s.appendLog(ctx, tx, groupID, actionlog.RoleAssigned(actor.Name, newRole.String(), target.Name)); err != nil {
				return err
			}
		}

		target.Role = newRole
		result = *target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// RemoveMember removes another member, or the caller themself when userID is
// the caller's own ID.
func (s *Service) RemoveMember(ctx context.Context, actor Actor, groupID, userID string) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.LockGroup(ctx, groupID); err != nil {
			return notFoundAsGroup(err)
		}
		caller, err := s.callerMember(ctx, tx, actor.ID, groupID)
		if err != nil {
			return err
		}

		if userID == actor.ID {
			if err := s.policy.Authorize(authz.Check{Caller: caller.Role, Action: authz.ActionRemoveMember, Self: true, Target: caller.Role}); err != nil {
				return err
			}
			if err := tx.DeleteMember(ctx, groupID, actor.ID); err != nil {
				return err
			}
			return s.appendLog(ctx, tx, groupID, actionlog.MemberLeft(actor.Name))
		}

		target, err := tx.GetMemberProfile(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if err := s.policy.Authorize(authz.Check{Caller: caller.Role, Action: authz.ActionRemoveMember, Target: target.Role}); err != nil {
			return err
		}
		if err := tx.DeleteMember(ctx, groupID, userID); err != nil {
			return err
		}
		return s.appendLog(ctx, tx, groupID, actionlog.MemberRemoved(actor.Name, target.Name))
	})
	if err != nil {
		return err
	}

	s.InvalidateUsers(ctx, userID)
	return nil
}

func (s *Service) CreateInvite(ctx context.Context, actor Actor, groupID string) (*Invite, error) {
	var result Invite
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := s.lockAndAuthorize(ctx, tx, actor.ID, groupID, authz.Check{Action: authz.ActionManageInvites}); err != nil {
			return err
		}

		code, err := generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		invite := Invite{
			ID:        uuid.NewString(),
			GroupID:   groupID,
			Code:      code,
			CreatedBy: actor.ID,
			CreatedAt: s.now().UTC(),
		}
		if err := tx.CreateInvite(ctx, &invite); err != nil {
			return err
		}
		if err := s.appendLog(ctx, tx, groupID, actionlog.InviteCreated(actor.Name)); err != nil {
			return err
		}

		result = invite
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) ListInvites(ctx context.Context, userID, groupID string) ([]Invite, error) {
	if _, err := s.Access(ctx, userID, groupID, authz.ActionManageInvites); err != nil {
		return nil, err
	}
	return s.repo.ListInvites(ctx, groupID)
}

func (s *Service) DeleteInvite(ctx context.Context, actor Actor, groupID, inviteID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := s.lockAndAuthorize(ctx, tx, actor.ID, groupID, authz.Check{Action: authz.ActionManageInvites}); err != nil {
			return err
		}

		deleted, err := tx.DeleteInvite(ctx, groupID, inviteID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrInviteNotFound
		}

		return s.appendLog(ctx, tx, groupID, actionlog.InviteDeleted(actor.Name))
	})
}

// PreviewInvite returns the group an invite code would join.
func (s *Service) PreviewInvite(ctx context.Context, code string) (*Group, error) {
	invite, err := s.validInvite(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}
	group, err := s.repo.GetGroup(ctx, invite.GroupID)
	if err != nil {
		return nil, notFoundAsInvite(err)
	}
	return group, nil
}

// ClaimInvite turns the invite into a member row for actor. The invite is
// deleted in the same transaction; a concurrent claim of the same code
// fails with ErrInviteNotFound.
func (s *Service) ClaimInvite(ctx context.Context, actor Actor, code string) (*Group, error) {
	var result Group
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		invite, err := s.validInvite(ctx, tx, code)
		if err != nil {
			return err
		}

		group, err := tx.LockGroup(ctx, invite.GroupID)
		if err != nil {
			return notFoundAsInvite(err)
		}

		_, err = tx.GetMember(ctx, group.ID, actor.ID)
		switch {
		case err == nil:
			// The invite is left unconsumed for someone else to use.
			return ErrAlreadyJoined
		case !errors.Is(err, ErrMemberNotFound):
			return err
		}

		consumed, err := tx.ConsumeInvite(ctx, invite.ID)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrInviteNotFound
		}

		member := Member{
			ID:       uuid.NewString(),
			GroupID:  group.ID,
			UserID:   actor.ID,
			Role:     role.Member,
			JoinedAt: s.now().UTC(),
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			if errors.Is(err, ErrAlreadyMember) {
				return ErrAlreadyJoined
			}
			return err
		}
		if err := s.appendLog(ctx, tx, group.ID, actionlog.MemberJoined(actor.Name)); err != nil {
			return err
		}

		result = *group
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateUsers(ctx, actor.ID)
	return &result, nil
}

// InvalidateUsers drops the cached group lists of the given users.
func (s *Service) InvalidateUsers(ctx context.Context, userIDs ...string) {
	for _, userID := range userIDs {
		s.cache.DeleteByUserID(ctx, userID)
	}
}

func (s *Service) authorize(ctx context.Context, repo Repository, userID, groupID string, check authz.Check) (*Member, error) {
	caller, err := s.callerMember(ctx, repo, userID, groupID)
	if err != nil {
		return nil, err
	}
	check.Caller = caller.Role
	if err := s.policy.Authorize(check); err != nil {
		return nil, err
	}
	return caller, nil
}

func (s *Service) lockAndAuthorize(ctx context.Context, tx Repository, userID, groupID string, check authz.Check) (*Group, error) {
	group, err := tx.LockGroup(ctx, groupID)
	if err != nil {
		return nil, notFoundAsGroup(err)
	}
	if _, err := s.authorize(ctx, tx, userID, groupID, check); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *Service) callerMember(ctx context.Context, repo Repository, userID, groupID string) (*Member, error) {
	member, err := repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, notFoundAsGroup(err)
	}
	return member, nil
}

func (s *Service) getGroup(ctx context.Context, repo Repository, groupID string) (*Group, error) {
	group, err := repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, notFoundAsGroup(err)
	}
	return group, nil
}

func (s *Service) validInvite(ctx context.Context, repo Repository, code string) (*Invite, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInviteNotFound
	}
	invite, err := repo.GetInviteByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if invite.Expired(s.now(), s.inviteTTL) {
		return nil, ErrInviteNotFound
	}
	return invite, nil
}

func (s *Service) appendLog(ctx context.Context, tx Repository, groupID, message string) error {
	entry := actionlog.New(groupID, message, s.now())
	return tx.AppendLog(ctx, &entry)
}

func listMemberIDs(ctx context.Context, repo Repository, groupID string) ([]string, error) {
	members, err := repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.UserID)
	}
	return ids, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func generateUniqueCode(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := auth.NewInviteCode()
		if err != nil {
			return "", err
		}
		taken, err := repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func notFoundAsGroup(err error) error {
	if errors.Is(err, ErrMemberNotFound) || errors.Is(err, ErrGroupNotFound) {
		return ErrGroupNotFound
	}
	return err
}

func notFoundAsInvite(err error) error {
	if errors.Is(err, ErrGroupNotFound) {
		return ErrInviteNotFound
	}
	return err
}

func toProfile(member Member, name string) MemberProfile {
	return MemberProfile{
		ID:       member.ID,
		GroupID:  member.GroupID,
		UserID:   member.UserID,
		Name:     name,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}
