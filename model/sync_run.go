package model

import "time"

type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

type SyncRun struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Status     SyncStatus `gorm:"column:status" json:"status"`
	Pages      int        `gorm:"column:pages" json:"pages"`
	Records    int        `gorm:"column:records" json:"records"`
	Error      string     `gorm:"column:error" json:"error,omitempty"`
	StartedAt  *time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

func (*SyncRun) TableName() string {
	return "tbl_sync_runs"
}
