package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
	"pantry-app-go/internal/domain/actionlog"
	"pantry-app-go/internal/domain/group"
	"pantry-app-go/internal/domain/items"
	"pantry-app-go/internal/domain/recipes"
	"pantry-app-go/internal/domain/user"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// singleOwnerIndex keeps at most one owner row per group.
const singleOwnerIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_group_members_single_owner ON group_members (group_id) WHERE role = 'owner'`

// Migrate brings the schema up to date. Postgres runs the embedded goose
// migrations; SQLite is built from the models.
func Migrate(ctx context.Context, gormDB *gorm.DB, driver string) error {
	switch driver {
	case DriverSQLite:
		return AutoMigrate(ctx, gormDB)
	case DriverPostgres, "":
		return migratePostgres(ctx, gormDB)
	default:
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}
}

func migratePostgres(ctx context.Context, gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// AutoMigrate creates the schema from the gorm models, including the
// single-owner partial index that tags cannot express.
func AutoMigrate(ctx context.Context, gormDB *gorm.DB) error {
	db := gormDB.WithContext(ctx)
	if err := db.AutoMigrate(
		&user.User{},
		&user.Session{},
		&group.Group{},
		&group.Member{},
		&group.Invite{},
		&items.Item{},
		&actionlog.Entry{},
		&recipes.Recipe{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(singleOwnerIndex).Error; err != nil {
		return fmt.Errorf("single owner index: %w", err)
	}
	return nil
}
