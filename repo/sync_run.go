package repo

import (
	"github.com/HavvokLab/contact-sync/model"
	"gorm.io/gorm"
)

type SyncRunRepo interface {
	Create(run *model.SyncRun) error
	Update(run *model.SyncRun) error
	FindLatest() (*model.SyncRun, error)
}

type syncRunRepo struct {
	db *gorm.DB
}

func NewSyncRunRepo(db *gorm.DB) SyncRunRepo {
	return &syncRunRepo{db: db}
}

func (r *syncRunRepo) Create(run *model.SyncRun) error {
	tx := r.db.Session(&gorm.Session{})
	if err := tx.Create(run).Error; err != nil {
		return err
	}

	return nil
}

func (r *syncRunRepo) Update(run *model.SyncRun) error {
	tx := r.db.Session(&gorm.Session{})
	if err := tx.Save(run).Error; err != nil {
		return err
	}

	return nil
}

func (r *syncRunRepo) FindLatest() (*model.SyncRun, error) {
	tx := r.db.Session(&gorm.Session{})
	var run model.SyncRun
	if err := tx.Order("id desc").First(&run).Error; err != nil {
		return nil, err
	}

	return &run, nil
}
