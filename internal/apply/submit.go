package apply

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hirehub/internal/types"
)

// DefaultSubmitDelay is how long the simulated submission takes.
const DefaultSubmitDelay = 1500 * time.Millisecond

// Submitter delivers a validated application.
type Submitter interface {
	Submit(ctx context.Context, app types.JobApplication) (*types.ApplicationReceipt, error)
}

// SimulatedSubmitter accepts every valid application after a fixed delay. Nothing
// is persisted.
type SimulatedSubmitter struct {
	Delay  time.Duration
	Logger *slog.Logger
}

// NewSimulatedSubmitter creates a submitter with the given delay.
func NewSimulatedSubmitter(delay time.Duration, logger *slog.Logger) *SimulatedSubmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedSubmitter{Delay: delay, Logger: logger}
}

// Submit waits for the configured delay and returns a receipt.
func (s *SimulatedSubmitter) Submit(ctx context.Context, app types.JobApplication) (*types.ApplicationReceipt, error) {
	if err := app.Validate(); err != nil {
		return nil, fmt.Errorf("invalid application: %w", err)
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	receipt := &types.ApplicationReceipt{
		ConfirmationID: uuid.New(),
		JobID:          app.JobID,
		SubmittedAt:    time.Now().UTC(),
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("application submitted",
		"confirmation_id", receipt.ConfirmationID,
		"job_id", app.JobID,
		"resume", app.ResumeName,
		"resume_size", app.ResumeSize)

	return receipt, nil
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, app types.JobApplication) (*types.ApplicationReceipt, error)

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, app types.JobApplication) (*types.ApplicationReceipt, error) {
	return f(ctx, app)
}
