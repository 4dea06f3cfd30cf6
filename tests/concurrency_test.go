package tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learnlynk/followup-tasks/internal/broadcast"
	"github.com/learnlynk/followup-tasks/internal/model"
	"github.com/learnlynk/followup-tasks/internal/repo"
	"github.com/learnlynk/followup-tasks/internal/service"
)

// Creation is deliberately not idempotent: identical concurrent requests
// must each insert their own row.
func TestConcurrent_DuplicateCreates(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	TruncateTables(t, pool)
	appID := SeedApplication(t, pool, "tenant-1")

	taskRepo := repo.NewTaskRepo(pool)
	appRepo := repo.NewApplicationRepo(pool)
	broadcaster := broadcast.New(pool)
	taskService := service.NewTaskService(taskRepo, appRepo, broadcaster.Channel(broadcast.SystemChannel), zap.NewNop())
	ctx := context.Background()

	req := model.CreateTaskRequest{
		ApplicationID: appID,
		TaskType:      model.TypeCall,
		DueAt:         time.Now().Add(time.Hour).Format(time.RFC3339),
	}

	const goroutines = 10

	var wg sync.WaitGroup
	results := make([]model.Task, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = taskService.Create(ctx, req)
		}(i)
	}

	wg.Wait()

	seen := make(map[string]bool, goroutines)
	for i := range results {
		require.NoError(t, errs[i], "request %d should not error", i)
		require.NotEmpty(t, results[i].ID)
		assert.False(t, seen[results[i].ID], "request %d reused a task id", i)
		seen[results[i].ID] = true
	}

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count))
	assert.Equal(t, goroutines, count, "every duplicate request creates its own row")
}

func TestConcurrent_CreateAndDashboardReads(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	TruncateTables(t, pool)
	appID := SeedApplication(t, pool, "tenant-1")

	taskRepo := repo.NewTaskRepo(pool)
	appRepo := repo.NewApplicationRepo(pool)
	broadcaster := broadcast.New(pool)
	taskService := service.NewTaskService(taskRepo, appRepo, broadcaster.Channel(broadcast.SystemChannel), zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	dueAt := now.Add(time.Minute)

	var wg sync.WaitGroup
	const creators = 5
	const readers = 5

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				taskService.Create(ctx, model.CreateTaskRequest{
					ApplicationID: appID,
					TaskType:      model.TypeReview,
					DueAt:         dueAt.Format(time.RFC3339),
				})
				time.Sleep(20 * time.Millisecond)
			}
		}()
	}

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				taskRepo.ListDueBetween(ctx, start, end)
				time.Sleep(10 * time.Millisecond)
			}
		}()
	}

	wg.Wait()

	// A wide window so the count holds even when the run crosses midnight.
	tasks, err := taskRepo.ListDueBetween(ctx, start, end.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, tasks, creators*5)
}
