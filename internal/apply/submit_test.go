package apply

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hirehub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplication() types.JobApplication {
	return types.JobApplication{
		JobID:          "1",
		JobTitle:       "Frontend Developer",
		ApplicantName:  "Alice",
		ApplicantEmail: "alice@example.com",
		ResumeName:     "cv.pdf",
		ResumeSize:     100,
	}
}

func TestSimulatedSubmitter_Receipt(t *testing.T) {
	s := NewSimulatedSubmitter(0, nil)

	receipt, err := s.Submit(context.Background(), validApplication())

	require.NoError(t, err)
	assert.Equal(t, "1", receipt.JobID)
	assert.NotEqual(t, uuid.Nil, receipt.ConfirmationID)
	assert.WithinDuration(t, time.Now(), receipt.SubmittedAt, time.Minute)
}

func TestSimulatedSubmitter_RejectsInvalid(t *testing.T) {
	s := NewSimulatedSubmitter(0, nil)
	app := validApplication()
	app.ApplicantEmail = ""

	_, err := s.Submit(context.Background(), app)

	assert.Error(t, err)
}

func TestSimulatedSubmitter_HonorsCancellation(t *testing.T) {
	s := NewSimulatedSubmitter(time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, validApplication())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitterFunc(t *testing.T) {
	called := false
	f := SubmitterFunc(func(ctx context.Context, app types.JobApplication) (*types.ApplicationReceipt, error) {
		called = true
		return &types.ApplicationReceipt{JobID: app.JobID}, nil
	})

	receipt, err := f.Submit(context.Background(), validApplication())

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "1", receipt.JobID)
}
