package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MigrationItem is one selected asset in flight within a run.
type MigrationItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Kind            AssetKind `json:"kind"`
	Source          Source    `json:"source"`
	TargetWorkspace string    `json:"targetWorkspace"`
	Status          Status    `json:"status"`
	ErrorMessage    string    `json:"errorMessage,omitempty"`
	LastModified    time.Time `json:"lastModified"`

	// Carried through from discovery for the report view; the run never
	// mutates these.
	RuntimeVersion string `json:"runtimeVersion,omitempty"`
	NodeType       string `json:"nodeType,omitempty"`
	Nodes          int    `json:"nodes,omitempty"`
	Language       string `json:"language,omitempty"`
	Dependencies   int    `json:"dependencies,omitempty"`
	Activities     int    `json:"activities,omitempty"`
	Schedule       string `json:"schedule,omitempty"`
	Cluster        string `json:"cluster,omitempty"`
}

// RunEvent is one entry in a run's append-only event log. Item updates carry
// an item ID; run-level messages carry only text.
type RunEvent struct {
	ItemID  string    `json:"itemId,omitempty"`
	Status  Status    `json:"status,omitempty"`
	Message string    `json:"message,omitempty"`
	Time    time.Time `json:"time"`
}

// RunCounts aggregates item outcomes for the completion notification.
type RunCounts struct {
	Total     int `json:"total"`
	Running   int `json:"running"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RunView is the serializable snapshot of a run returned by the API.
type RunView struct {
	ID              string          `json:"id"`
	TargetWorkspace string          `json:"targetWorkspace"`
	StartedAt       time.Time       `json:"startedAt"`
	FinishedAt      *time.Time      `json:"finishedAt,omitempty"`
	Counts          RunCounts       `json:"counts"`
	Items           []MigrationItem `json:"items"`
}

// MigrationRun is one user-initiated batch of items migrated together into
// one target workspace. Item updates are per-item merges keyed on item ID;
// the item list itself is never replaced, so concurrently settling
// partitions cannot drop each other's writes.
type MigrationRun struct {
	ID              string
	TargetWorkspace string
	StartedAt       time.Time

	mu         sync.Mutex
	finishedAt *time.Time
	items      []*MigrationItem
	index      map[string]int
	events     []RunEvent
}

// NewRun builds a run from the selected assets with every item already
// Running, so the report is navigable before any network call resolves.
func NewRun(targetWorkspace string, selected []Asset) *MigrationRun {
	r := &MigrationRun{
		TargetWorkspace: targetWorkspace,
		StartedAt:       time.Now(),
		index:           make(map[string]int, len(selected)),
	}
	for _, a := range selected {
		if _, dup := r.index[a.ID]; dup {
			continue
		}
		item := &MigrationItem{
			ID:              a.ID,
			Name:            a.Name,
			Kind:            a.Kind,
			Source:          a.Source,
			TargetWorkspace: targetWorkspace,
			Status:          StatusRunning,
			LastModified:    time.Now(),
			RuntimeVersion:  a.RuntimeVersion,
			NodeType:        a.NodeType,
			Nodes:           a.Nodes,
			Language:        a.Language,
			Dependencies:    a.Dependencies,
			Activities:      a.Activities,
			Schedule:        a.Schedule,
			Cluster:         a.Cluster,
		}
		r.index[item.ID] = len(r.items)
		r.items = append(r.items, item)
	}
	return r
}

// UpdateItem merges a status result into one item by ID. Returns false if the
// item does not exist or is already terminal (a settled item only changes
// again via Rearm).
func (r *MigrationRun) UpdateItem(id string, status Status, errorMessage string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[id]
	if !ok {
		return false
	}
	item := r.items[pos]
	if item.Status.Terminal() {
		return false
	}
	item.Status = status
	item.ErrorMessage = ""
	if status == StatusFailed {
		item.ErrorMessage = errorMessage
	}
	item.LastModified = time.Now()
	r.events = append(r.events, RunEvent{
		ItemID:  id,
		Status:  status,
		Message: item.ErrorMessage,
		Time:    item.LastModified,
	})
	return true
}

// RearmFailed resets every Failed item back to Running with its error
// cleared, and reopens the run. Success items are untouched. Returns the
// re-armed items.
func (r *MigrationRun) RearmFailed() []MigrationItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rearmed []MigrationItem
	now := time.Now()
	for _, item := range r.items {
		if item.Status != StatusFailed {
			continue
		}
		item.Status = StatusRunning
		item.ErrorMessage = ""
		item.LastModified = now
		r.events = append(r.events, RunEvent{ItemID: item.ID, Status: StatusRunning, Time: now})
		rearmed = append(rearmed, *item)
	}
	if len(rearmed) > 0 {
		r.finishedAt = nil
	}
	return rearmed
}

// Items returns a copy of the item list in selection order.
func (r *MigrationRun) Items() []MigrationItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MigrationItem, len(r.items))
	for i, item := range r.items {
		out[i] = *item
	}
	return out
}

// Item returns a copy of one item by ID.
func (r *MigrationRun) Item(id string) (MigrationItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[id]
	if !ok {
		return MigrationItem{}, false
	}
	return *r.items[pos], true
}

// Counts returns the aggregate item outcomes.
func (r *MigrationRun) Counts() RunCounts {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := RunCounts{Total: len(r.items)}
	for _, item := range r.items {
		switch item.Status {
		case StatusSuccess:
			c.Succeeded++
		case StatusFailed:
			c.Failed++
		default:
			c.Running++
		}
	}
	return c
}

// AppendEvent adds a run-level message to the event log.
func (r *MigrationRun) AppendEvent(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RunEvent{Message: message, Time: time.Now()})
}

// EventsSince returns event log entries starting from the given offset.
func (r *MigrationRun) EventsSince(offset int) []RunEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.events) {
		return nil
	}
	out := make([]RunEvent, len(r.events)-offset)
	copy(out, r.events[offset:])
	return out
}

// Finish marks the run settled.
func (r *MigrationRun) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.finishedAt = &now
}

// Finished reports whether the run has settled.
func (r *MigrationRun) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finishedAt != nil
}

// View returns a serializable snapshot of the run.
func (r *MigrationRun) View() RunView {
	counts := r.Counts()
	items := r.Items()
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunView{
		ID:              r.ID,
		TargetWorkspace: r.TargetWorkspace,
		StartedAt:       r.StartedAt,
		FinishedAt:      r.finishedAt,
		Counts:          counts,
		Items:           items,
	}
}

// RunStore is an in-memory thread-safe store for migration runs. A new run
// becomes the current one; earlier runs stay readable by ID.
type RunStore struct {
	mu     sync.RWMutex
	runs   map[string]*MigrationRun
	latest string
}

// NewRunStore creates an empty run store.
func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]*MigrationRun)}
}

// Create adds a run, assigning it a UUID, and marks it current.
func (s *RunStore) Create(r *MigrationRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.New().String()
	s.runs[r.ID] = r
	s.latest = r.ID
}

// Get returns a run by ID, or nil if not found.
func (s *RunStore) Get(id string) *MigrationRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[id]
}

// Latest returns the current run, or nil if none started yet.
func (s *RunStore) Latest() *MigrationRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[s.latest]
}

// List returns all runs, most recent first.
func (s *RunStore) List() []*MigrationRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*MigrationRun, 0, len(s.runs))
	for _, r := range s.runs {
		result = append(result, r)
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].StartedAt.After(result[i].StartedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result
}
