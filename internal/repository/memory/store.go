// Package memory implements the repository interfaces over process memory.
// It backs development runs without POSTGRES_DSN and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/repository"
)

// Store holds every entity behind one lock so cascades and the
// (volunteer, request) uniqueness check are atomic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	users       map[string]*record[domain.User]
	resources   map[string]*record[domain.Resource]
	requests    map[string]*record[domain.Request]
	assignments map[string]*record[domain.Assignment]
}

type record[T any] struct {
	seq   int64
	value T
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:         time.Now,
		users:       map[string]*record[domain.User]{},
		resources:   map[string]*record[domain.Resource]{},
		requests:    map[string]*record[domain.Request]{},
		assignments: map[string]*record[domain.Assignment]{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return userStore{s} }

// Resources returns the resource repository view of the store.
func (s *Store) Resources() repository.ResourceRepository { return resourceStore{s} }

// Requests returns the request repository view of the store.
func (s *Store) Requests() repository.RequestRepository { return requestStore{s} }

// Assignments returns the assignment repository view of the store.
func (s *Store) Assignments() repository.AssignmentRepository { return assignmentStore{s} }

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// collect filters values under the read lock, sorts them and applies limit.
func collect[T any](recs map[string]*record[T], preds []func(T) bool, less func(a, b *record[T]) bool, limit int) []T {
	matched := make([]*record[T], 0, len(recs))
	for _, rec := range recs {
		if repository.Match(rec.value, preds) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]T, len(matched))
	for i, rec := range matched {
		out[i] = rec.value
	}
	return out
}

func count[T any](recs map[string]*record[T], preds []func(T) bool) int {
	n := 0
	for _, rec := range recs {
		if repository.Match(rec.value, preds) {
			n++
		}
	}
	return n
}

// newestFirst breaks timestamp ties with insertion order.
func newestFirst[T any](at func(T) time.Time) func(a, b *record[T]) bool {
	return func(a, b *record[T]) bool {
		ta, tb := at(a.value), at(b.value)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return a.seq > b.seq
	}
}

type userStore struct{ *Store }

func (s userStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.users {
		if rec.value.Username == user.Username || strings.EqualFold(rec.value.Email, user.Email) {
			return repository.ErrConflict
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = &record[domain.User]{seq: s.next(), value: *user}
	return nil
}

func (s userStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range s.users {
		if id != user.ID && strings.EqualFold(other.value.Email, user.Email) {
			return repository.ErrConflict
		}
	}
	user.Username, user.Role, user.CreatedAt = rec.value.Username, rec.value.Role, rec.value.CreatedAt
	user.UpdatedAt = s.now()
	rec.value = *user
	return nil
}

func (s userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := rec.value
	return &user, nil
}

func (s userStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.find(func(u domain.User) bool { return u.Username == username })
}

func (s userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s userStore) find(pred func(domain.User) bool) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if pred(rec.value) {
			user := rec.value
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s userStore) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.users, filter.Predicates(), newestFirst(func(u domain.User) time.Time { return u.CreatedAt }), filter.Limit), nil
}

func (s userStore) Count(_ context.Context, filter repository.UserFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(s.users, filter.Predicates()), nil
}

// Delete removes the user and everything that references it.
func (s userStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return nil
	}
	delete(s.users, id)
	for rid, rec := range s.resources {
		if rec.value.OwnerID == id {
			delete(s.resources, rid)
		}
	}
	for rid, rec := range s.requests {
		if rec.value.OwnerID == id {
			s.deleteRequestLocked(rid)
		}
	}
	for aid, rec := range s.assignments {
		if rec.value.VolunteerID == id {
			delete(s.assignments, aid)
		}
	}
	return nil
}

type resourceStore struct{ *Store }

func (s resourceStore) Create(_ context.Context, resource *domain.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resource.ID == "" {
		resource.ID = uuid.NewString()
	}
	now := s.now()
	resource.CreatedAt, resource.UpdatedAt = now, now
	s.resources[resource.ID] = &record[domain.Resource]{seq: s.next(), value: *resource}
	return nil
}

func (s resourceStore) Update(_ context.Context, resource *domain.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.resources[resource.ID]
	if !ok {
		return repository.ErrNotFound
	}
	resource.OwnerID, resource.CreatedAt = rec.value.OwnerID, rec.value.CreatedAt
	resource.UpdatedAt = s.now()
	rec.value = *resource
	return nil
}

func (s resourceStore) GetByID(_ context.Context, id string) (*domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.resources[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	resource := rec.value
	return &resource, nil
}

func (s resourceStore) List(_ context.Context, filter repository.ResourceFilter) ([]domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.resources, filter.Predicates(), newestFirst(func(r domain.Resource) time.Time { return r.CreatedAt }), filter.Limit), nil
}

func (s resourceStore) Count(_ context.Context, filter repository.ResourceFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(s.resources, filter.Predicates()), nil
}

func (s resourceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resources, id)
	return nil
}

type requestStore struct{ *Store }

func (s requestStore) Create(_ context.Context, request *domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	now := s.now()
	request.CreatedAt, request.UpdatedAt = now, now
	s.requests[request.ID] = &record[domain.Request]{seq: s.next(), value: *request}
	return nil
}

func (s requestStore) Update(_ context.Context, request *domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.requests[request.ID]
	if !ok {
		return repository.ErrNotFound
	}
	request.OwnerID, request.CreatedAt = rec.value.OwnerID, rec.value.CreatedAt
	request.UpdatedAt = s.now()
	rec.value = *request
	return nil
}

func (s requestStore) GetByID(_ context.Context, id string) (*domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	request := rec.value
	return &request, nil
}

func (s requestStore) List(_ context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	less := func(a, b *record[domain.Request]) bool {
		if filter.Less(a.value, b.value) {
			return true
		}
		if filter.Less(b.value, a.value) {
			return false
		}
		if filter.Order == repository.OrderUrgency {
			return a.seq < b.seq
		}
		return a.seq > b.seq
	}
	return collect(s.requests, filter.Predicates(), less, filter.Limit), nil
}

func (s requestStore) Count(_ context.Context, filter repository.RequestFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(s.requests, filter.Predicates()), nil
}

func (s requestStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteRequestLocked(id)
	return nil
}

func (s *Store) deleteRequestLocked(id string) {
	delete(s.requests, id)
	for aid, rec := range s.assignments {
		if rec.value.RequestID == id {
			delete(s.assignments, aid)
		}
	}
}

type assignmentStore struct{ *Store }

func (s assignmentStore) Create(_ context.Context, assignment *domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[assignment.VolunteerID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.requests[assignment.RequestID]; !ok {
		return repository.ErrNotFound
	}
	for _, rec := range s.assignments {
		if rec.value.VolunteerID == assignment.VolunteerID && rec.value.RequestID == assignment.RequestID {
			return repository.ErrConflict
		}
	}
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = s.now()
	}
	s.assignments[assignment.ID] = &record[domain.Assignment]{seq: s.next(), value: *assignment}
	return nil
}

func (s assignmentStore) GetByID(_ context.Context, id string) (*domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	assignment := rec.value
	return &assignment, nil
}

func (s assignmentStore) UpdateStatus(_ context.Context, id string, status domain.AssignmentStatus, at time.Time) (*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec.value.Status = status
	if status == domain.AssignmentStatusCompleted {
		completed := at
		rec.value.CompletedAt = &completed
		if req, ok := s.requests[rec.value.RequestID]; ok {
			req.value.Status = domain.RequestStatusFulfilled
			req.value.UpdatedAt = at
		}
	}
	assignment := rec.value
	return &assignment, nil
}

func (s assignmentStore) Exists(_ context.Context, volunteerID, requestID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.assignments {
		if rec.value.VolunteerID == volunteerID && rec.value.RequestID == requestID {
			return true, nil
		}
	}
	return false, nil
}

func (s assignmentStore) List(_ context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.assignments, filter.Predicates(), newestFirst(func(a domain.Assignment) time.Time { return a.AssignedAt }), filter.Limit), nil
}

func (s assignmentStore) Count(_ context.Context, filter repository.AssignmentFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return count(s.assignments, filter.Predicates()), nil
}

func (s assignmentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, id)
	return nil
}
