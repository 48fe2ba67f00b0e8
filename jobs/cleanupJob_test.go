package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"civicconnect-be/jobs"
	"civicconnect-be/models"
	"civicconnect-be/query"
	"civicconnect-be/services"
	"civicconnect-be/store"
	"civicconnect-be/store/mocks"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)

func newJob(s store.IssueStore) *jobs.CleanupJob {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewCleanupService(s, services.NewRetentionPolicy(0), logger)
	job := jobs.NewCleanupJob(service, "0 2 * * *", time.UTC, logger)
	return job.WithClock(func() time.Time { return testNow })
}

func newResolvedIssue(resolvedAt time.Time) models.Issue {
	return models.Issue{
		ID:         primitive.NewObjectID(),
		Title:      "Overflowing garbage bin near market",
		Category:   models.GarbageSanitation,
		Status:     models.StatusResolved,
		Priority:   models.PriorityMedium,
		ReportedBy: primitive.NewObjectID(),
		IsPublic:   true,
		CreatedAt:  resolvedAt.Add(-72 * time.Hour),
		ResolvedAt: &resolvedAt,
	}
}

func TestRunNowSweepsAndIsIdempotent(t *testing.T) {
	mem := store.NewMemoryIssueStore(
		newResolvedIssue(testNow.Add(-6*24*time.Hour)),
		newResolvedIssue(testNow.Add(-8*24*time.Hour)),
	)
	job := newJob(mem)

	first, err := job.RunNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Deleted != 2 {
		t.Fatalf("first run deleted %d, want 2", first.Deleted)
	}

	// Same clock, nothing new eligible: the second run is a no-op.
	second, err := job.RunNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Deleted != 0 {
		t.Errorf("second run deleted %d, want 0", second.Deleted)
	}
}

func TestRunNowRejectsWhileSweepInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockIssueStore(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	mockStore.EXPECT().IDs(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	first := mockStore.EXPECT().DeleteMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, p query.Predicate) (int64, error) {
			close(started)
			<-release
			return 1, nil
		})
	mockStore.EXPECT().DeleteMany(gomock.Any(), gomock.Any()).Return(int64(0), nil).After(first)

	job := newJob(mockStore)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := job.RunNow(context.Background()); err != nil {
			t.Errorf("in-flight run failed: %v", err)
		}
	}()

	<-started
	if _, err := job.RunNow(context.Background()); !errors.Is(err, jobs.ErrCleanupBusy) {
		t.Errorf("expected ErrCleanupBusy while a sweep is running, got %v", err)
	}

	close(release)
	wg.Wait()

	// The flag is cleared once the sweep finishes.
	if _, err := job.RunNow(context.Background()); err != nil {
		t.Errorf("run after completion failed: %v", err)
	}
}

// Overlapping scheduled ticks collapse to a single sweep.
func TestTickIsSingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockIssueStore(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	mockStore.EXPECT().IDs(gomock.Any(), gomock.Any()).Return(nil, nil)
	mockStore.EXPECT().DeleteMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, p query.Predicate) (int64, error) {
			close(started)
			<-release
			return 0, nil
		})

	job := newJob(mockStore)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Tick(context.Background())
	}()

	<-started
	// Lands while the first sweep holds the flag; must return without
	// touching the store. gomock fails the test if it does.
	job.Tick(context.Background())

	close(release)
	wg.Wait()
}

func TestTickContainsStoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockIssueStore(ctrl)

	mockStore.EXPECT().IDs(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	failed := mockStore.EXPECT().DeleteMany(gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("not primary"))
	mockStore.EXPECT().DeleteMany(gomock.Any(), gomock.Any()).Return(int64(0), nil).After(failed)

	job := newJob(mockStore)

	// The failure is logged, not propagated, and must not wedge the flag.
	job.Tick(context.Background())

	if _, err := job.RunNow(context.Background()); err != nil {
		t.Errorf("run after failed tick errored: %v", err)
	}
}

func TestStartRejectsMalformedSchedule(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewCleanupService(store.NewMemoryIssueStore(), services.NewRetentionPolicy(0), logger)

	job := jobs.NewCleanupJob(service, "every other tuesday", time.UTC, logger)
	if err := job.Start(); err == nil {
		t.Fatal("expected malformed cron spec to be rejected")
	}
}
