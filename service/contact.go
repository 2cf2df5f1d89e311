package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/HavvokLab/contact-sync/collector"
	"github.com/HavvokLab/contact-sync/repo"
	"gorm.io/gorm"
)

const (
	MsgSyncSucceeded = "Contacts synchronization was finished successfully"
	MsgSyncFailed    = "Contacts synchronization was finished with error"
	MsgRunFound      = "Sync run found"
	MsgNoRunFound    = "No sync run found"
	MsgRunLookupErr  = "An error occurred while finding sync run."
)

type ContactSyncer interface {
	Execute(ctx context.Context) (*collector.SyncResult, error)
}

type ContactService struct {
	syncer  ContactSyncer
	runRepo repo.SyncRunRepo
}

func NewContactService(syncer ContactSyncer, runRepo repo.SyncRunRepo) *ContactService {
	return &ContactService{syncer: syncer, runRepo: runRepo}
}

func (s *ContactService) Sync(ctx context.Context) ServiceResponse {
	result, err := s.syncer.Execute(ctx)
	if err != nil {
		return Failure(MsgSyncFailed, http.StatusBadRequest)
	}

	return Success(MsgSyncSucceeded, result)
}

func (s *ContactService) LatestRun(ctx context.Context) ServiceResponse {
	if s.runRepo == nil {
		return Failure(MsgNoRunFound, http.StatusNotFound)
	}

	run, err := s.runRepo.FindLatest()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Failure(MsgNoRunFound, http.StatusNotFound)
		}
		return Failure(MsgRunLookupErr, http.StatusInternalServerError)
	}

	return Success(MsgRunFound, run)
}
