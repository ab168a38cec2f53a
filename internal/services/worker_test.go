package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvarshith95/Capstone-Project/internal/models"
)

type claimTrackingRepo struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]models.ScreeningStatus
	attempts int
}

func newClaimTrackingRepo(statuses map[uuid.UUID]models.ScreeningStatus) *claimTrackingRepo {
	return &claimTrackingRepo{statuses: statuses}
}

func (c *claimTrackingRepo) Create(s *models.Screening) error { return nil }

func (c *claimTrackingRepo) FindByID(id uuid.UUID) (*models.Screening, error) {
	return &models.Screening{ID: id}, nil
}

func (c *claimTrackingRepo) Claim(id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	if c.statuses[id] != models.StatusQueued {
		return false, nil
	}
	c.statuses[id] = models.StatusProcessing
	return true, nil
}

func (c *claimTrackingRepo) claimAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

func (c *claimTrackingRepo) UpdateStatus(id uuid.UUID, status models.ScreeningStatus) error {
	return nil
}

func (c *claimTrackingRepo) UpdateReport(id uuid.UUID, report models.ScreeningReport) error {
	return nil
}

func (c *claimTrackingRepo) UpdateError(id uuid.UUID, errorMsg string) error { return nil }

func (c *claimTrackingRepo) FindPendingJobs(limit int) ([]models.Screening, error) {
	return nil, nil
}

type countingScreener struct {
	mu   sync.Mutex
	runs []uuid.UUID
}

func (c *countingScreener) ScreenCandidate(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, id)
	return nil
}

func (c *countingScreener) ranFor() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID(nil), c.runs...)
}

// The create handler and the pending-jobs poller can both enqueue the same
// screening; only the worker that claims the row may run it.
func TestWorker_DuplicateEnqueueRunsOnce(t *testing.T) {
	id := uuid.New()
	repo := newClaimTrackingRepo(map[uuid.UUID]models.ScreeningStatus{id: models.StatusQueued})
	screener := &countingScreener{}

	w := NewWorker(repo, screener, 1)
	w.Start(context.Background())

	w.EnqueueJob(id)
	w.EnqueueJob(id)

	require.Eventually(t, func() bool {
		return repo.claimAttempts() == 2
	}, time.Second, 5*time.Millisecond)
	w.Stop()

	assert.Equal(t, []uuid.UUID{id}, screener.ranFor())
}

func TestWorker_AlreadyProcessingJobIsSkipped(t *testing.T) {
	id := uuid.New()
	repo := newClaimTrackingRepo(map[uuid.UUID]models.ScreeningStatus{id: models.StatusProcessing})
	screener := &countingScreener{}

	w := NewWorker(repo, screener, 1)
	w.Start(context.Background())

	w.EnqueueJob(id)

	require.Eventually(t, func() bool {
		return repo.claimAttempts() == 1
	}, time.Second, 5*time.Millisecond)
	w.Stop()

	assert.Empty(t, screener.ranFor())
}
