package actionlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New builds an entry stamped with the given time.
func New(groupID, message string, at time.Time) Entry {
	return Entry{
		ID:         uuid.NewString(),
		GroupID:    groupID,
		LogMessage: message,
		Timestamp:  at.UTC(),
	}
}

func GroupCreated(name string) string {
	return fmt.Sprintf("Group %s created.", name)
}

func GroupRenamed(name string) string {
	return fmt.Sprintf("Group renamed to %s.", name)
}

func MemberAdded(actor, target string) string {
	return fmt.Sprintf("%s added %s to the group.", actor, target)
}

func RoleAssigned(actor, role, target string) string {
	return fmt.Sprintf("%s assigned the %s role to %s.", actor, role, target)
}

func OwnershipTransferred(target, group string) string {
	return fmt.Sprintf("%s is now the owner of group %s.", target, group)
}

func MemberLeft(actor string) string {
	return fmt.Sprintf("%s left the group.", actor)
}

func MemberRemoved(actor, target string) string {
	return fmt.Sprintf("%s removed %s from the group.", actor, target)
}

func MemberJoined(name string) string {
	return fmt.Sprintf("%s has joined the group.", name)
}

func InviteCreated(actor string) string {
	return fmt.Sprintf("%s created an invite.", actor)
}

func InviteDeleted(actor string) string {
	return fmt.Sprintf("%s deleted an invite.", actor)
}

func ItemCreated(actor, item string) string {
	return fmt.Sprintf("%s added %s to the pantry.", actor, item)
}

func ItemUpdated(actor, item string) string {
	return fmt.Sprintf("%s updated %s.", actor, item)
}

func ItemDeleted(actor, item string) string {
	return fmt.Sprintf("%s removed %s from the pantry.", actor, item)
}
