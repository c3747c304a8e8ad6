package group

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pantry-app-go/internal/domain/actionlog"
	groupdomain "pantry-app-go/internal/domain/group"
	"pantry-app-go/internal/domain/items"
	"pantry-app-go/internal/domain/role"
	"pantry-app-go/internal/domain/user"
	pgrepo "pantry-app-go/internal/repository/postgres"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(groupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) LockGroup(ctx context.Context, groupID string) (*groupdomain.Group, error) {
	if !pgrepo.ValidIDs(groupID) {
		return nil, groupdomain.ErrGroupNotFound
	}
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", groupID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) GetGroup(ctx context.Context, groupID string) (*groupdomain.Group, error) {
	if !pgrepo.ValidIDs(groupID) {
		return nil, groupdomain.ErrGroupNotFound
	}
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) ListGroupsByUser(ctx context.Context, userID string) ([]groupdomain.Group, error) {
	var groups []groupdomain.Group
	if err := r.db.WithContext(ctx).
		Table("groups").
		Select("groups.*").
		Joins("join group_members on group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.name asc, groups.id asc").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresRepository) CreateGroup(ctx context.Context, group *groupdomain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *PostgresRepository) UpdateGroupName(ctx context.Context, groupID, name string) error {
	return r.db.WithContext(ctx).Model(&groupdomain.Group{}).Where("id = ?", groupID).Update("name", name).Error
}

func (r *PostgresRepository) DeleteGroup(ctx context.Context, groupID string) error {
	db := r.db.WithContext(ctx)
	for _, model := range []interface{}{&actionlog.Entry{}, &items.Item{}, &groupdomain.Invite{}, &groupdomain.Member{}} {
		if err := db.Where("group_id = ?", groupID).Delete(model).Error; err != nil {
			return err
		}
	}
	return db.Delete(&groupdomain.Group{}, "id = ?", groupID).Error
}

func (r *PostgresRepository) GetMember(ctx context.Context, groupID, userID string) (*groupdomain.Member, error) {
	if !pgrepo.ValidIDs(groupID, userID) {
		return nil, groupdomain.ErrMemberNotFound
	}
	var member groupdomain.Member
	if err := r.db.WithContext(ctx).Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

type memberRow struct {
	ID       string    `gorm:"column:id"`
	GroupID  string    `gorm:"column:group_id"`
	UserID   string    `gorm:"column:user_id"`
	Name     string    `gorm:"column:name"`
	Role     string    `gorm:"column:role"`
	JoinedAt time.Time `gorm:"column:joined_at"`
}

func (row memberRow) profile() groupdomain.MemberProfile {
	return groupdomain.MemberProfile{
		ID:       row.ID,
		GroupID:  row.GroupID,
		UserID:   row.UserID,
		Name:     row.Name,
		Role:     role.Role(row.Role),
		JoinedAt: row.JoinedAt,
	}
}

func (r *PostgresRepository) profiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("group_members").
		Select("group_members.id, group_members.group_id, group_members.user_id, users.name, group_members.role, group_members.joined_at").
		Joins("join users on users.id = group_members.user_id")
}

func (r *PostgresRepository) GetMemberProfile(ctx context.Context, groupID, userID string) (*groupdomain.MemberProfile, error) {
	if !pgrepo.ValidIDs(groupID, userID) {
		return nil, groupdomain.ErrMemberNotFound
	}
	var rows []memberRow
	if err := r.profiles(ctx).
		Where("group_members.group_id = ? AND group_members.user_id = ?", groupID, userID).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, groupdomain.ErrMemberNotFound
	}
	profile := rows[0].profile()
	return &profile, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, groupID string) ([]groupdomain.MemberProfile, error) {
	var rows []memberRow
	if err := r.profiles(ctx).
		Where("group_members.group_id = ?", groupID).
		Order("group_members.joined_at asc, group_members.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]groupdomain.MemberProfile, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.profile())
	}
	return members, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *groupdomain.Member) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return groupdomain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, groupID, userID string, newRole role.Role) error {
	if !pgrepo.ValidIDs(groupID, userID) {
		return groupdomain.ErrMemberNotFound
	}
	result := r.db.WithContext(ctx).Model(&groupdomain.Member{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", newRole)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, groupID, userID string) error {
	return r.db.WithContext(ctx).Delete(&groupdomain.Member{}, "group_id = ? AND user_id = ?", groupID, userID).Error
}

func (r *PostgresRepository) GetUserName(ctx context.Context, userID string) (string, error) {
	if !pgrepo.ValidIDs(userID) {
		return "", groupdomain.ErrUserNotFound
	}
	var found user.User
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id = ?", userID).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", groupdomain.ErrUserNotFound
		}
		return "", err
	}
	return found.Name, nil
}

func (r *PostgresRepository) CreateInvite(ctx context.Context, invite *groupdomain.Invite) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(invite).Error
}

func (r *PostgresRepository) GetInviteByCode(ctx context.Context, code string) (*groupdomain.Invite, error) {
	var invite groupdomain.Invite
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

func (r *PostgresRepository) ListInvites(ctx context.Context, groupID string) ([]groupdomain.Invite, error) {
	invites := make([]groupdomain.Invite, 0)
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at asc, id asc").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *PostgresRepository) DeleteInvite(ctx context.Context, groupID, inviteID string) (bool, error) {
	if !pgrepo.ValidIDs(groupID, inviteID) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Delete(&groupdomain.Invite{}, "group_id = ? AND id = ?", groupID, inviteID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ConsumeInvite(ctx context.Context, inviteID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&groupdomain.Invite{}, "id = ?", inviteID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&groupdomain.Invite{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) AppendLog(ctx context.Context, entry *actionlog.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
