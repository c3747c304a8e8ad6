package group

import (
	"errors"

	"pantry-app-go/internal/domain/apperr"
)

var (
	// ErrGroupNotFound covers both a missing group and a caller who is not a member.
	ErrGroupNotFound  = apperr.NotFound("group_not_found", "You are not a member of this group, or the group does not exist.")
	ErrMemberNotFound = apperr.NotFound("member_not_found", "That user is not a member of this group.")
	ErrUserNotFound   = apperr.NotFound("user_not_found", "User not found.")
	ErrInviteNotFound = apperr.NotFound("invite_not_found", "Invite not found.")
	ErrAlreadyMember  = apperr.Conflict("already_member", "That user is already a member of this group.")
	ErrAlreadyJoined  = apperr.Conflict("already_member", "You are already a member of this group.")
	ErrNameEmpty      = apperr.Validation("invalid_name", "Group name must not be empty.")
	ErrNameTooLong    = apperr.Validation("invalid_name", "Group name is too long.")

	ErrCodeGenerationFailed = errors.New("invite code generation failed")
)
