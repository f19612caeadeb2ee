package scheduler

import (
	"context"
	"fmt"
	"strconv"

	"nestegg/internal/domain/sync"
)

// UserSyncJob runs a full sync for one user: accounts first so every
// transaction has a mirror row to land on, then transactions.
type UserSyncJob struct {
	userID       int64
	orchestrator *sync.Orchestrator
}

// NewUserSyncJob creates a full-sync job for a user
func NewUserSyncJob(userID int64, orchestrator *sync.Orchestrator) *UserSyncJob {
	return &UserSyncJob{userID: userID, orchestrator: orchestrator}
}

// Execute runs the sync. Per-item failures are degraded outcomes and surface
// as a job error so the run shows up in the job metrics.
func (j *UserSyncJob) Execute(ctx context.Context) error {
	result, err := j.orchestrator.SyncUser(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if failed := result.Failed(); failed > 0 {
		return fmt.Errorf("sync completed with %d item errors", failed)
	}

	return nil
}

func (j *UserSyncJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

func (j *UserSyncJob) Description() string {
	return fmt.Sprintf("Full sync for user %d", j.userID)
}

// JobProvider builds one UserSyncJob per user with connected items
func JobProvider(orchestrator *sync.Orchestrator, listUserIDs func(context.Context) ([]int64, error)) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		userIDs, err := listUserIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users for sync: %w", err)
		}

		jobs := make([]Job, 0, len(userIDs))
		for _, userID := range userIDs {
			jobs = append(jobs, NewUserSyncJob(userID, orchestrator))
		}
		return jobs, nil
	}
}
