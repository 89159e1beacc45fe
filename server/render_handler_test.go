package server

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NoYaRender/core/render"
	"NoYaRender/model"
)

type stubRenderer struct {
	err      error
	progress []float64
}

func (s *stubRenderer) Render(_ render.Options, progress render.ProgressFunc) error {
	for _, pct := range s.progress {
		progress(pct)
	}
	return s.err
}

func waitForTerminal(t *testing.T, m *JobManager, id string) model.Job {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("job never reached a terminal state")
		default:
		}
		job, ok := m.Get(id)
		require.True(t, ok)
		if job.Status == model.JobCompleted || job.Status == model.JobFailed {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestJobLifecycleSuccess(t *testing.T) {
	m := NewJobManager(&stubRenderer{progress: []float64{25, 50, 100}}, nil)
	m.StartWorker()

	job, err := m.Submit(render.Options{OutPath: "out.mp4"})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)

	final := waitForTerminal(t, m, job.ID)
	assert.Equal(t, model.JobCompleted, final.Status)
	assert.Equal(t, 100.0, final.Progress)
	assert.Empty(t, final.Error)
	assert.Equal(t, "out.mp4", final.OutPath)
}

func TestJobLifecycleFailure(t *testing.T) {
	m := NewJobManager(&stubRenderer{err: errors.New("codec unavailable")}, nil)
	m.StartWorker()

	job, err := m.Submit(render.Options{})
	require.NoError(t, err)

	final := waitForTerminal(t, m, job.ID)
	assert.Equal(t, model.JobFailed, final.Status)
	assert.Contains(t, final.Error, "codec unavailable")
}

func TestSubscribeStreamsUntilTerminal(t *testing.T) {
	m := NewJobManager(&stubRenderer{progress: []float64{50}}, nil)
	m.StartWorker()

	job, err := m.Submit(render.Options{})
	require.NoError(t, err)

	updates, ok := m.Subscribe(job.ID)
	require.True(t, ok)

	var last model.Job
	for snapshot := range updates {
		last = snapshot
	}
	assert.Equal(t, model.JobCompleted, last.Status)
}

func TestSubscribeUnknownJob(t *testing.T) {
	m := NewJobManager(&stubRenderer{}, nil)
	_, ok := m.Subscribe("nope")
	assert.False(t, ok)
}

func TestGetUnknownJob(t *testing.T) {
	m := NewJobManager(&stubRenderer{}, nil)
	_, ok := m.Get("nope")
	assert.False(t, ok)
}

// Progress updates arrive from the encoder's own goroutine, so they can race
// the worker's terminal update. A send on a channel the terminal update
// already closed would panic the server.
func TestConcurrentProgressAndTerminalUpdates(t *testing.T) {
	for i := 0; i < 200; i++ {
		m := NewJobManager(&stubRenderer{}, nil)
		job, err := m.Submit(render.Options{})
		require.NoError(t, err)

		updates, ok := m.Subscribe(job.ID)
		require.True(t, ok)

		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for p := 0; p < 50; p++ {
					m.update(job.ID, func(j *model.Job) { j.Progress = float64(p) })
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.update(job.ID, func(j *model.Job) { j.Status = model.JobCompleted })
		}()
		wg.Wait()

		// The subscriber channel must close exactly once.
		for range updates {
		}

		final, ok := m.Get(job.ID)
		require.True(t, ok)
		assert.Equal(t, model.JobCompleted, final.Status)
	}
}
