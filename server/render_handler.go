package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"NoYaRender/config"
	"NoYaRender/core/render"
	"NoYaRender/logger"
	"NoYaRender/model"
	"NoYaRender/storage"
)

// RenderRequest is the job submission payload. It mirrors the render CLI's
// configuration surface.
type RenderRequest struct {
	Audio           []string `json:"audio"`
	Background      string   `json:"background"`
	Subtitle        string   `json:"subtitle,omitempty"`
	Logo            string   `json:"logo,omitempty"`
	Resolution      string   `json:"resolution"`
	DurationMinutes float64  `json:"durationMinutes"`
	BarColor        string   `json:"barColor"` // #RRGGBB
	Processor       string   `json:"processor"`
	Out             string   `json:"out"`
	BeatZoom        bool     `json:"beatZoom"`
}

type queuedJob struct {
	id   string
	opts render.Options
}

// Renderer runs one render job to completion. Satisfied by
// *render.Orchestrator.
type Renderer interface {
	Render(opts render.Options, progress render.ProgressFunc) error
}

// JobManager queues render jobs and runs them one at a time. Renders are
// synchronous and CPU-bound, so a single worker keeps the encoder from
// contending with itself.
type JobManager struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
	subs map[string][]chan model.Job
	queue chan queuedJob
	orch  Renderer
	store *storage.ArtifactStore
	once  sync.Once
}

// NewJobManager creates a JobManager around an orchestrator and an optional
// artifact store.
func NewJobManager(orch Renderer, store *storage.ArtifactStore) *JobManager {
	return &JobManager{
		jobs:  make(map[string]*model.Job),
		subs:  make(map[string][]chan model.Job),
		queue: make(chan queuedJob, 16),
		orch:  orch,
		store: store,
	}
}

// StartWorker launches the single render worker.
func (m *JobManager) StartWorker() {
	m.once.Do(func() {
		go m.work()
	})
}

// Submit registers a job and enqueues it.
func (m *JobManager) Submit(opts render.Options) (*model.Job, error) {
	job := &model.Job{
		ID:        uuid.NewString(),
		Status:    model.JobPending,
		OutPath:   opts.OutPath,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	select {
	case m.queue <- queuedJob{id: job.ID, opts: opts}:
		return job, nil
	default:
		m.update(job.ID, func(j *model.Job) {
			j.Status = model.JobFailed
			j.Error = "render queue full"
		})
		return nil, errQueueFull
	}
}

// Get returns a snapshot of a job.
func (m *JobManager) Get(id string) (model.Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return model.Job{}, false
	}
	return *job, true
}

// Subscribe returns a channel of job snapshots for progress streaming. The
// channel is closed when the job reaches a terminal state.
func (m *JobManager) Subscribe(id string) (<-chan model.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, false
	}

	ch := make(chan model.Job, 32)
	ch <- *job
	if job.Status == model.JobCompleted || job.Status == model.JobFailed {
		close(ch)
		return ch, true
	}
	m.subs[id] = append(m.subs[id], ch)
	return ch, true
}

func (m *JobManager) work() {
	for q := range m.queue {
		m.update(q.id, func(j *model.Job) { j.Status = model.JobProcessing })
		logger.Info("job started", logger.String("job", q.id))

		err := m.orch.Render(q.opts, func(pct float64) {
			m.update(q.id, func(j *model.Job) { j.Progress = pct })
		})

		if err != nil {
			logger.Error("job failed", logger.String("job", q.id), logger.ErrorField(err))
			m.update(q.id, func(j *model.Job) {
				j.Status = model.JobFailed
				j.Error = err.Error()
			})
			continue
		}

		artifactURL := ""
		if m.store != nil {
			url, upErr := m.store.UploadArtifact(context.Background(), q.opts.OutPath, q.id)
			if upErr != nil {
				logger.Error("artifact upload failed", logger.String("job", q.id), logger.ErrorField(upErr))
			} else {
				artifactURL = url
			}
		}

		m.update(q.id, func(j *model.Job) {
			j.Status = model.JobCompleted
			j.Progress = 100
			j.ArtifactURL = artifactURL
		})
		logger.Info("job completed", logger.String("job", q.id))
	}
}

// update mutates a job under lock and notifies subscribers. Sends and closes
// stay under the lock: progress updates race the terminal update, and a send
// after close would panic. Sends are non-blocking, so holding the lock is
// safe.
func (m *JobManager) update(id string, fn func(*model.Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return
	}
	fn(job)
	job.UpdatedAt = time.Now()
	snapshot := *job
	terminal := job.Status == model.JobCompleted || job.Status == model.JobFailed

	for _, ch := range m.subs[id] {
		select {
		case ch <- snapshot:
		default: // slow subscriber, drop the update
		}
		if terminal {
			close(ch)
		}
	}
	if terminal {
		delete(m.subs, id)
	}
}

var errQueueFull = &queueFullError{}

type queueFullError struct{}

func (*queueFullError) Error() string { return "render queue full" }

// APIHandler carries the server's dependencies.
type APIHandler struct {
	manager  *JobManager
	profiles *config.ProfileTable
}

// NewAPIHandler creates the handler set.
func NewAPIHandler(manager *JobManager, profiles *config.ProfileTable) *APIHandler {
	return &APIHandler{manager: manager, profiles: profiles}
}

// SubmitRenderHandler accepts a render request and queues it.
func (h *APIHandler) SubmitRenderHandler(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	barColor, err := render.ParseHexColor(req.BarColor)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := render.Options{
		AudioPaths:      req.Audio,
		Background:      req.Background,
		SubtitlePath:    req.Subtitle,
		LogoPath:        req.Logo,
		Resolution:      req.Resolution,
		DurationMinutes: req.DurationMinutes,
		BarColor:        barColor,
		Processor:       req.Processor,
		OutPath:         req.Out,
		BeatZoom:        req.BeatZoom,
	}

	job, err := h.manager.Submit(opts)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, job)
}

// JobStatusHandler returns the current state of a job.
func (h *APIHandler) JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, ok := h.manager.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ProfilesHandler lists the available processor choices.
func (h *APIHandler) ProfilesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"processors": h.profiles.Processors()})
}

// PresetsHandler lists the available resolution presets.
func (h *APIHandler) PresetsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"presets": render.Presets()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
