package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

func TestDetailLoader_Found(t *testing.T) {
	d := NewDetailLoader(&stubCatalog{jobs: testJobs()}, nil)

	detail, err := d.Load(context.Background(), "2")

	require.NoError(t, err)
	require.NotNil(t, detail.Job)
	assert.Equal(t, "Go Developer", detail.Job.Title)
	assert.False(t, detail.IsLoading)
	assert.Empty(t, detail.Error)
	assert.Equal(t, detail, d.Current())
}

func TestDetailLoader_NotFound(t *testing.T) {
	d := NewDetailLoader(&stubCatalog{jobs: testJobs()}, nil)

	detail, err := d.Load(context.Background(), "999")

	require.NoError(t, err)
	assert.Nil(t, detail.Job)
	assert.True(t, detail.NotFound)
	assert.Equal(t, NotFoundMessage, detail.Error)
}

func TestDetailLoader_EmptyID(t *testing.T) {
	d := NewDetailLoader(&stubCatalog{jobs: testJobs()}, nil)

	detail, err := d.Load(context.Background(), "")

	require.NoError(t, err)
	assert.True(t, detail.NotFound)
	assert.False(t, detail.IsLoading)
}

func TestDetailLoader_Failure(t *testing.T) {
	d := NewDetailLoader(&stubCatalog{getErr: errors.New("timeout")}, nil)

	detail, err := d.Load(context.Background(), "1")

	require.NoError(t, err)
	assert.False(t, detail.NotFound)
	assert.Equal(t, DetailFailMessage, detail.Error)
}

func TestDetailLoader_PublishesLoading(t *testing.T) {
	cat := &stubCatalog{jobs: testJobs()}
	gate := cat.block("1")
	d := NewDetailLoader(cat, nil)

	done := make(chan Detail)
	go func() {
		detail, _ := d.Load(context.Background(), "1")
		done <- detail
	}()

	assert.Eventually(t, func() bool { return d.Current().IsLoading }, timeout, tick)
	assert.Equal(t, "1", d.Current().ID)

	close(gate)
	detail := <-done
	assert.False(t, detail.IsLoading)
	require.NotNil(t, detail.Job)
}

func TestDetailLoader_StaleResponseDiscarded(t *testing.T) {
	cat := &stubCatalog{jobs: testJobs()}
	cat.block("1")
	d := NewDetailLoader(cat, nil)

	var published []string
	d.Subscribe(func(detail Detail) {
		if detail.Job != nil {
			published = append(published, detail.Job.ID)
		}
	})

	stale := make(chan error)
	go func() {
		_, err := d.Load(context.Background(), "1")
		stale <- err
	}()
	assert.Eventually(t, func() bool { return d.Current().ID == "1" }, timeout, tick)

	detail, err := d.Load(context.Background(), "3")
	require.NoError(t, err)
	require.NotNil(t, detail.Job)
	assert.Equal(t, "3", detail.Job.ID)

	// the superseded request is cancelled and never publishes
	assert.ErrorIs(t, <-stale, ErrSuperseded)
	assert.Equal(t, "3", d.Current().Job.ID)
	assert.Equal(t, []string{"3"}, published)
}

func TestDetailLoader_Cancel(t *testing.T) {
	cat := &stubCatalog{jobs: testJobs()}
	cat.block("2")
	d := NewDetailLoader(cat, nil)

	result := make(chan error)
	go func() {
		_, err := d.Load(context.Background(), "2")
		result <- err
	}()
	assert.Eventually(t, func() bool { return d.Current().IsLoading }, timeout, tick)

	var published []Detail
	var mu sync.Mutex
	d.Subscribe(func(detail Detail) {
		mu.Lock()
		published = append(published, detail)
		mu.Unlock()
	})

	d.Cancel()

	assert.ErrorIs(t, <-result, ErrSuperseded)
	assert.Equal(t, Detail{ID: "2"}, d.Current())
	mu.Lock()
	assert.Equal(t, []Detail{{ID: "2"}}, published)
	mu.Unlock()

	// cancelling with nothing pending leaves the settled detail alone
	settled, err := d.Load(context.Background(), "1")
	require.NoError(t, err)
	d.Cancel()
	assert.Equal(t, settled, d.Current())
}
