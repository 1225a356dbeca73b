package mysql

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pulseapp/pulse/internal/repository/mysql/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
		&model.CommentLike{},
		&model.Bookmark{},
		&model.Share{},
		&model.Block{},
		&model.Follow{},
		&model.FollowRequest{},
		&model.Notification{},
		&model.Settings{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
