package groups

import (
	"time"

	"pantry-app-go/internal/domain/actionlog"
	groupdomain "pantry-app-go/internal/domain/group"
	itemsdomain "pantry-app-go/internal/domain/items"
)

type groupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type memberResponse struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type inviteResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Code      string    `json:"code"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type invitePreviewResponse struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
}

type logEntryResponse struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	LogMessage string    `json:"log_message"`
	Timestamp  time.Time `json:"timestamp"`
}

type itemResponse struct {
	ID                        string    `json:"id"`
	GroupID                   string    `json:"group_id"`
	Name                      string    `json:"name"`
	Description               string    `json:"description"`
	Category                  string    `json:"category"`
	PantryQuantity            int       `json:"pantry_quantity"`
	MinimumThreshold          int       `json:"minimum_threshold"`
	AutoAddToShoppingList     bool      `json:"auto_add_to_shopping_list"`
	ShoppingListQuantity      int       `json:"shopping_list_quantity"`
	DontAddToPantryOnPurchase bool      `json:"dont_add_to_pantry_on_purchase"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

type groupDetailsResponse struct {
	Group   groupResponse      `json:"group"`
	Role    string             `json:"role"`
	Members []memberResponse   `json:"members"`
	Invites []inviteResponse   `json:"invites"`
	Items   []itemResponse     `json:"items"`
	History []logEntryResponse `json:"history"`
}

func toGroupResponse(group *groupdomain.Group) groupResponse {
	return groupResponse{ID: group.ID, Name: group.Name, CreatedAt: group.CreatedAt}
}

func toMemberResponse(member groupdomain.MemberProfile) memberResponse {
	return memberResponse{
		UserID:   member.UserID,
		Name:     member.Name,
		Role:     member.Role.String(),
		JoinedAt: member.JoinedAt,
	}
}

func toMemberResponses(members []groupdomain.MemberProfile) []memberResponse {
	response := make([]memberResponse, 0, len(members))
	for _, member := range members {
		response = append(response, toMemberResponse(member))
	}
	return response
}

func toInviteResponse(invite groupdomain.Invite) inviteResponse {
	return inviteResponse{
		ID:        invite.ID,
		GroupID:   invite.GroupID,
		Code:      invite.Code,
		CreatedBy: invite.CreatedBy,
		CreatedAt: invite.CreatedAt,
	}
}

func toInviteResponses(invites []groupdomain.Invite) []inviteResponse {
	response := make([]inviteResponse, 0, len(invites))
	for _, invite := range invites {
		response = append(response, toInviteResponse(invite))
	}
	return response
}

func toLogEntryResponse(entry actionlog.Entry) logEntryResponse {
	return logEntryResponse{
		ID:         entry.ID,
		GroupID:    entry.GroupID,
		LogMessage: entry.LogMessage,
		Timestamp:  entry.Timestamp,
	}
}

func toLogEntryResponses(entries []actionlog.Entry) []logEntryResponse {
	response := make([]logEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toLogEntryResponse(entry))
	}
	return response
}

func toItemResponse(item itemsdomain.Item) itemResponse {
	return itemResponse{
		ID:                        item.ID,
		GroupID:                   item.GroupID,
		Name:                      item.Name,
		Description:               item.Description,
		Category:                  item.Category,
		PantryQuantity:            item.PantryQuantity,
		MinimumThreshold:          item.MinimumThreshold,
		AutoAddToShoppingList:     item.AutoAddToShoppingList,
		ShoppingListQuantity:      item.ShoppingListQuantity,
		DontAddToPantryOnPurchase: item.DontAddToPantryOnPurchase,
		UpdatedAt:                 item.UpdatedAt,
	}
}

func toItemResponses(items []itemsdomain.Item) []itemResponse {
	response := make([]itemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toItemResponse(item))
	}
	return response
}
