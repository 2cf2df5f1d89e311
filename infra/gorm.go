package infra

import (
	"github.com/HavvokLab/contact-sync/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewGormDB(paths ...string) (*gorm.DB, error) {
	var path string = "database.db"
	if len(paths) > 0 {
		path = paths[0]
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.SyncRun{}); err != nil {
		return nil, err
	}

	return db, nil
}
