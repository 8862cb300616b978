package core

import (
	"fmt"
	"sort"
	"sync"

	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

// registry is the in memory set of known jobs. Callers only ever see copies;
// all mutation goes through update under the one lock.
type registry struct {
	lock sync.Mutex
	jobs map[string]*structs.Job
}

func newRegistry() *registry {
	return &registry{jobs: map[string]*structs.Job{}}
}

func (r *registry) add(j *structs.Job) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.jobs[j.ID] = j.Copy()
}

func (r *registry) get(id string) (*structs.Job, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, false
	}
	return j.Copy(), true
}

// list returns copies of matching jobs, newest first, with limit & offset applied.
func (r *registry) list(q *structs.Query) []*structs.Job {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()

	r.lock.Lock()
	found := []*structs.Job{}
	for _, j := range r.jobs {
		if q.Matches(j) {
			found = append(found, j.Copy())
		}
	}
	r.lock.Unlock()

	sort.Slice(found, func(i, j int) bool {
		if found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].ID > found[j].ID
		}
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})

	if q.Offset >= len(found) {
		return []*structs.Job{}
	}
	found = found[q.Offset:]
	if len(found) > q.Limit {
		found = found[:q.Limit]
	}
	return found
}

// update runs fn against the live job with the lock held & returns a copy of
// the result. fn should also make the matching durable write.
func (r *registry) update(id string, fn func(j *structs.Job) error) (*structs.Job, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	err := fn(j)
	if err != nil {
		return nil, err
	}
	return j.Copy(), nil
}

// remove deletes the job if check (run under the lock) passes.
func (r *registry) remove(id string, check func(j *structs.Job) error) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return false, nil
	}
	if check != nil {
		err := check(j)
		if err != nil {
			return false, err
		}
	}
	delete(r.jobs, id)
	return true, nil
}

func (r *registry) count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.jobs)
}
