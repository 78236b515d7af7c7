package registry

import (
	"errors"
	"sync"

	"github.com/utkarshgupta137/httpmock/internal/matching"
	"github.com/utkarshgupta137/httpmock/internal/model"
)

// maxFindForRetries bounds the number of times FindFor will retry after
// losing a race between selecting a winner and bumping its call counter. A
// delete landing between those two steps is rare enough that three retries
// are sufficient in practice; a fourth consecutive loss almost certainly
// means something is wrong, so FindFor gives up and reports no match rather
// than retrying forever.
const maxFindForRetries = 3

// ErrNotFound is returned by Read and Delete when no mock has the given id.
var ErrNotFound = errors.New("mock not found")

// Registry stores active mocks and serves the read path that matches
// incoming requests against them.
//
// Reads (Read, and the candidate-enumeration phase of FindFor) take the
// read lock and only ever see a consistent snapshot. Writes (Add, Delete,
// DeleteAll) take the write lock for their whole duration. FindFor's
// matching phase runs the evaluator against a snapshot taken under the read
// lock, without holding any lock — the engine never blocks a writer. Only
// once a winner is chosen does FindFor briefly upgrade to the write lock to
// bump that mock's call counter, re-validating under the new lock that the
// winner is still present (it could have been deleted in between) and
// retrying the whole evaluation, bounded by maxFindForRetries, if not.
type Registry struct {
	mu     sync.RWMutex
	mocks  map[int]*model.ActiveMock
	order  []int // ids in insertion order, which is also ascending id order
	nextID int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		mocks:  make(map[int]*model.ActiveMock),
		nextID: 1,
	}
}

// Add registers a new mock and returns the id it was assigned. Ids are
// strictly increasing and never reused, even across deletes, so "lowest id
// wins" ties among full matches always favor the mock registered earliest.
func (reg *Registry) Add(def model.Definition) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := reg.nextID
	reg.nextID++
	reg.mocks[id] = &model.ActiveMock{ID: id, Definition: def}
	reg.order = append(reg.order, id)
	return id
}

// Read returns the current state of the mock with the given id, including
// its call counter.
func (reg *Registry) Read(id int) (model.ActiveMock, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	m, ok := reg.mocks[id]
	if !ok {
		return model.ActiveMock{}, ErrNotFound
	}
	return *m, nil
}

// Delete removes the mock with the given id.
func (reg *Registry) Delete(id int) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.mocks[id]; !ok {
		return ErrNotFound
	}
	delete(reg.mocks, id)
	reg.order = removeID(reg.order, id)
	return nil
}

// DeleteAll removes every mock and reports how many were removed. It does
// not reset the id counter: the next mock Added after a DeleteAll still
// gets a fresh, never-before-used id.
func (reg *Registry) DeleteAll() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	n := len(reg.mocks)
	reg.mocks = make(map[int]*model.ActiveMock)
	reg.order = nil
	return n
}

// List returns every currently registered mock, in ascending id order.
func (reg *Registry) List() []model.ActiveMock {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]model.ActiveMock, 0, len(reg.order))
	for _, id := range reg.order {
		out = append(out, *reg.mocks[id])
	}
	return out
}

// FindFor matches r against every registered mock and, on a match, bumps
// the winning mock's call counter before returning it. The match itself
// (matching.Evaluate) runs outside any lock, over a point-in-time snapshot;
// only the counter bump needs the write lock.
func (reg *Registry) FindFor(r *model.Request) (*model.ActiveMock, *matching.Rejection) {
	for attempt := 0; attempt <= maxFindForRetries; attempt++ {
		snapshot := reg.snapshot()

		winner, rejection := matching.Evaluate(snapshot, r)
		if winner == nil {
			return nil, rejection
		}

		if m, ok := reg.bumpIfPresent(winner.Mock.ID); ok {
			return m, nil
		}
		// The winner was deleted between the snapshot and the bump attempt
		// — re-evaluate against current state rather than serving a stale
		// mock's response.
	}
	// Exhausted retries under sustained concurrent deletion: report no
	// match rather than spin indefinitely.
	return nil, &matching.Rejection{}
}

func (reg *Registry) snapshot() []*model.ActiveMock {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]*model.ActiveMock, 0, len(reg.order))
	for _, id := range reg.order {
		m := *reg.mocks[id]
		out = append(out, &m)
	}
	return out
}

func (reg *Registry) bumpIfPresent(id int) (*model.ActiveMock, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	m, ok := reg.mocks[id]
	if !ok {
		return nil, false
	}
	m.CallCount++
	copied := *m
	return &copied, true
}

func removeID(ids []int, id int) []int {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
