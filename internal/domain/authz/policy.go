// Package authz decides whether a group member may perform an action.
//
// Authorize returns nil to allow and a coded *apperr.Error to deny; the error
// message is the reason shown to the caller.
package authz

import (
	"pantry-app-go/internal/domain/apperr"
	"pantry-app-go/internal/domain/role"
)

type Action string

const (
	ActionViewGroup         Action = "view_group"
	ActionRenameGroup       Action = "rename_group"
	ActionDeleteGroup       Action = "delete_group"
	ActionManageInvites     Action = "manage_invites"
	ActionAddMember         Action = "add_member"
	ActionChangeRole        Action = "change_role"
	ActionTransferOwnership Action = "transfer_ownership"
	ActionRemoveMember      Action = "remove_member"
	ActionLeaveGroup        Action = "leave_group"
	ActionManageItems       Action = "manage_items"
	ActionViewHistory       Action = "view_history"
)

var (
	ErrNoAccess              = apperr.Forbidden("no_access", "You do not have access to this group.")
	ErrOwnerRequired         = apperr.Forbidden("owner_required", "Only the group owner can do that.")
	ErrSecondOwner           = apperr.Validation("second_owner", "There can only be one owner of a group.")
	ErrCannotChangeOwnRole   = apperr.Forbidden("cannot_change_own_role", "You cannot change your own group role.")
	ErrAssignNotAllowed      = apperr.Forbidden("assign_not_allowed", "You do not have permission to assign this role.")
	ErrTransferRequiresOwner = apperr.Forbidden("transfer_requires_owner", "You do not have permission to assign a different owner.")
	ErrOwnerCannotLeave      = apperr.Forbidden("owner_cannot_leave", "Owners cannot remove themselves from the group. Transfer ownership first.")
	ErrRemoveNotAllowed      = apperr.Forbidden("remove_not_allowed", "You do not have permission to remove members from this group.")
	ErrRemoveOutranked       = apperr.Forbidden("remove_outranked", "You do not have permission to remove this member.")
)

// Policy holds the configurable parts of the decision table.
type Policy struct {
	// AdminsManageMembers lets admins change roles of and remove members
	// ranked strictly below them. When false only the owner may.
	AdminsManageMembers bool
}

func DefaultPolicy() Policy {
	return Policy{AdminsManageMembers: true}
}

// Check describes one authorization question. Target and NewRole are only
// read by actions that act on another member or assign a role.
type Check struct {
	Caller  role.Role
	Action  Action
	Target  role.Role
	Self    bool
	NewRole role.Role
}

func (p Policy) Authorize(c Check) error {
	if !c.Caller.Valid() {
		return ErrNoAccess
	}

	switch c.Action {
	case ActionViewGroup, ActionViewHistory, ActionManageItems:
		return nil

	case ActionRenameGroup, ActionDeleteGroup, ActionManageInvites:
		return requireOwner(c.Caller)

	case ActionAddMember:
		if err := requireOwner(c.Caller); err != nil {
			return err
		}
		if c.NewRole == role.Owner {
			return ErrSecondOwner
		}
		if !c.NewRole.Valid() {
			return role.ErrInvalidRole
		}
		return nil

	case ActionChangeRole:
		if c.Self {
			return ErrCannotChangeOwnRole
		}
		if !c.NewRole.Valid() {
			return role.ErrInvalidRole
		}
		if c.NewRole == role.Owner {
			return p.Authorize(Check{Caller: c.Caller, Action: ActionTransferOwnership, Target: c.Target})
		}
		if !p.managesMembers(c.Caller) || !c.Caller.IsHigherThan(c.Target) {
			return ErrAssignNotAllowed
		}
		return nil

	case ActionTransferOwnership:
		if c.Self {
			return ErrCannotChangeOwnRole
		}
		if c.Caller != role.Owner {
			return ErrTransferRequiresOwner
		}
		return nil

	case ActionLeaveGroup:
		if c.Caller == role.Owner {
			return ErrOwnerCannotLeave
		}
		return nil

	case ActionRemoveMember:
		if c.Self {
			return p.Authorize(Check{Caller: c.Caller, Action: ActionLeaveGroup})
		}
		if !p.managesMembers(c.Caller) {
			return ErrRemoveNotAllowed
		}
		if !c.Caller.IsHigherThan(c.Target) {
			return ErrRemoveOutranked
		}
		return nil
	}

	return ErrNoAccess
}

func (p Policy) managesMembers(caller role.Role) bool {
	switch caller {
	case role.Owner:
		return true
	case role.Admin:
		return p.AdminsManageMembers
	default:
		return false
	}
}

func requireOwner(caller role.Role) error {
	if caller != role.Owner {
		return ErrOwnerRequired
	}
	return nil
}
