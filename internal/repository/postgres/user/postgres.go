package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pantry-app-go/internal/domain/actionlog"
	"pantry-app-go/internal/domain/group"
	"pantry-app-go/internal/domain/items"
	"pantry-app-go/internal/domain/recipes"
	"pantry-app-go/internal/domain/role"
	domain "pantry-app-go/internal/domain/user"
	pgrepo "pantry-app-go/internal/repository/postgres"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !pgrepo.ValidIDs(userID) {
		return nil, domain.ErrUserNotFound
	}
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error
}

// TouchSession bumps last_used_at and returns the session in one statement.
func (r *PostgresRepository) TouchSession(ctx context.Context, token string, at time.Time) (*domain.Session, error) {
	var session domain.Session
	result := r.db.WithContext(ctx).
		Model(&session).
		Clauses(clause.Returning{}).
		Where("token = ?", token).
		Update("last_used_at", at.UTC())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *PostgresRepository) DeleteSessionsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Session{}).Error
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, userID string) ([]string, error) {
	var affected []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned []string
		if err := tx.Model(&group.Member{}).
			Where("user_id = ? AND role = ?", userID, role.Owner).
			Pluck("group_id", &owned).Error; err != nil {
			return err
		}

		members := tx.Model(&group.Member{}).Where("user_id = ?", userID)
		if len(owned) > 0 {
			members = tx.Model(&group.Member{}).Where("user_id = ? OR group_id IN ?", userID, owned)
		}
		if err := members.Distinct().Pluck("user_id", &affected).Error; err != nil {
			return err
		}

		if len(owned) > 0 {
			for _, model := range []interface{}{&actionlog.Entry{}, &items.Item{}, &group.Invite{}, &group.Member{}} {
				if err := tx.Where("group_id IN ?", owned).Delete(model).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", owned).Delete(&group.Group{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&group.Member{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&recipes.Recipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Session{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", userID).Delete(&domain.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}
