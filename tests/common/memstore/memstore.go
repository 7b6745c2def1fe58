//go:build unit || e2e

// Package memstore is an in-memory unit of work for use case tests. Each
// transaction works on a private copy of the data and publishes it on commit,
// so a failed transaction leaves nothing behind.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/domain/resource"
	"resource-hub/internal/domain/user"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/usecase/queries"
	"resource-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

type Job struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	Status    string
	LastError *string
	ClaimedAt time.Time
}

type state struct {
	reservations map[uuid.UUID]*reservation.Reservation
	resources    map[uuid.UUID]*resource.Resource
	roles        map[uuid.UUID]user.Role
	jobs         []*Job
}

func (s *state) clone() *state {
	c := &state{
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(s.reservations)),
		resources:    make(map[uuid.UUID]*resource.Resource, len(s.resources)),
		roles:        make(map[uuid.UUID]user.Role, len(s.roles)),
		jobs:         make([]*Job, len(s.jobs)),
	}
	for id, r := range s.reservations {
		c.reservations[id] = copyReservation(r)
	}
	for id, r := range s.resources {
		c.resources[id] = r
	}
	for id, r := range s.roles {
		c.roles[id] = r
	}
	for i, j := range s.jobs {
		cp := *j
		c.jobs[i] = &cp
	}
	return c
}

type Store struct {
	mu          sync.Mutex
	data        *state
	failure     error
	failureSkip int
}

var (
	_ shared.UnitOfWork            = (*Store)(nil)
	_ queries.ReservationReadStore = (*Store)(nil)
)

func New() *Store {
	return &Store{data: (&state{}).clone()}
}

func (s *Store) AddResource(res *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.resources[res.ID()] = res
}

func (s *Store) AddUser(id uuid.UUID, role user.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.roles[id] = role
}

func (s *Store) Put(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.reservations[r.ID()] = copyReservation(r)
}

// Reservation returns the committed state of id, or nil.
func (s *Store) Reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reservations[id]
	if !ok {
		return nil
	}
	return copyReservation(r)
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Job, len(s.data.jobs))
	for i, j := range s.data.jobs {
		out[i] = *j
	}
	return out
}

// FailNextTx makes the next transaction fail with err before running.
func (s *Store) FailNextTx(err error) {
	s.FailTxAfter(0, err)
}

// FailTxAfter lets skip transactions through and fails the one after them.
func (s *Store) FailTxAfter(skip int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
	s.failureSkip = skip
}

// Within serializes transactions, which is stricter than the database.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}

	work := s.data.clone()
	if err := fn(ctx, &tx{data: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	return fn(ctx, &reads{data: s.data.clone()})
}

func (s *Store) CommandReads() shared.CommandReads {
	return &liveReads{store: s}
}

func (s *Store) takeFailure() error {
	if s.failure == nil {
		return nil
	}
	if s.failureSkip > 0 {
		s.failureSkip--
		return nil
	}
	err := s.failure
	s.failure = nil
	return err
}

type tx struct {
	data *state
}

func (t *tx) Reservations() shared.ReservationRepository   { return &reservationRepo{data: t.data} }
func (t *tx) Notifications() shared.NotificationRepository { return &notificationRepo{data: t.data} }
func (t *tx) Reads() shared.CommandReads                   { return &reads{data: t.data} }

type reservationRepo struct {
	data *state
}

func (r *reservationRepo) Insert(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.data.reservations[res.ID()]; ok {
		return errs.Wrapf(errs.ErrConflict, "memstore: duplicate reservation %s", res.ID())
	}
	if _, ok := r.data.resources[res.ResourceID()]; !ok {
		return errs.Wrapf(errs.ErrNotFound, "memstore: resource %s", res.ResourceID())
	}
	r.data.reservations[res.ID()] = copyReservation(res)
	return nil
}

func (r *reservationRepo) UpdateDecision(_ context.Context, res *reservation.Reservation, prev reservation.Status) error {
	stored, ok := r.data.reservations[res.ID()]
	if !ok {
		return errs.Wrapf(errs.ErrNotFound, "memstore: reservation %s", res.ID())
	}
	if stored.Status() != prev {
		return errs.Wrapf(reservation.ErrInvalidStatus, "memstore: status moved to %s", stored.Status())
	}
	r.data.reservations[res.ID()] = copyReservation(res)
	return nil
}

func (r *reservationRepo) LockResource(context.Context, uuid.UUID) error {
	return nil
}

type notificationRepo struct {
	data *state
}

func (n *notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	n.data.jobs = append(n.data.jobs, &Job{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   runAt,
		Status:  "queued",
	})
	return nil
}

func (n *notificationRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	var out []shared.NotificationJob
	for _, j := range n.data.jobs {
		if len(out) >= limit {
			break
		}
		due := j.Status == "queued" && !j.RunAt.After(now)
		stale := j.Status == "running" && j.ClaimedAt.Before(now.Add(-shared.ClaimLease))
		if due || stale {
			j.Status = "running"
			j.ClaimedAt = now
			j.Attempts++
			out = append(out, shared.NotificationJob{
				ID: j.ID, Kind: j.Kind, Topic: j.Topic, Payload: j.Payload, Attempts: j.Attempts,
			})
		}
	}
	return out, nil
}

func (n *notificationRepo) MarkSent(_ context.Context, id uuid.UUID) error {
	return n.update(id, func(j *Job) { j.Status = "sent" })
}

func (n *notificationRepo) MarkFailed(_ context.Context, id uuid.UUID, lastError string, retryAt *time.Time) error {
	return n.update(id, func(j *Job) {
		j.LastError = &lastError
		if retryAt == nil {
			j.Status = "failed"
			return
		}
		j.Status = "queued"
		j.RunAt = *retryAt
	})
}

func (n *notificationRepo) update(id uuid.UUID, fn func(*Job)) error {
	for _, j := range n.data.jobs {
		if j.ID == id {
			fn(j)
			return nil
		}
	}
	return errs.Wrapf(errs.ErrNotFound, "memstore: job %s", id)
}

type reads struct {
	data *state
}

func (r *reads) ResourceByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := r.data.resources[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrNotFound, "memstore: resource %s", id)
	}
	return res, nil
}

func (r *reads) RoleOf(_ context.Context, userID uuid.UUID) (user.Role, error) {
	role, ok := r.data.roles[userID]
	if !ok {
		return "", errs.Wrapf(errs.ErrNotFound, "memstore: user %s", userID)
	}
	return role, nil
}

func (r *reads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.data.reservations[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrNotFound, "memstore: reservation %s", id)
	}
	return copyReservation(res), nil
}

func (r *reads) ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.ReservationByID(ctx, id)
}

func (r *reads) FindActiveOverlapping(_ context.Context, resourceID uuid.UUID, w reservation.Window, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.data.reservations {
		if res.ResourceID() != resourceID || !res.IsActive() {
			continue
		}
		if excludeID != nil && res.ID() == *excludeID {
			continue
		}
		if res.Window().Overlaps(w) {
			out = append(out, copyReservation(res))
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *reads) ExpiredApproved(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var expired []*reservation.Reservation
	for _, res := range r.data.reservations {
		if res.Status() == reservation.StatusApproved && res.Window().HasEnded(now) {
			expired = append(expired, res)
		}
	}
	sortByStart(expired)
	ids := make([]uuid.UUID, 0, len(expired))
	for _, res := range expired {
		if len(ids) >= limit {
			break
		}
		ids = append(ids, res.ID())
	}
	return ids, nil
}

// liveReads reads committed state outside any transaction.
type liveReads struct {
	store *Store
}

func (l *liveReads) with() *reads {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return &reads{data: l.store.data.clone()}
}

func (l *liveReads) ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return l.with().ResourceByID(ctx, id)
}

func (l *liveReads) RoleOf(ctx context.Context, userID uuid.UUID) (user.Role, error) {
	return l.with().RoleOf(ctx, userID)
}

func (l *liveReads) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return l.with().ReservationByID(ctx, id)
}

func (l *liveReads) ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return l.with().ReservationByIDForUpdate(ctx, id)
}

func (l *liveReads) FindActiveOverlapping(ctx context.Context, resourceID uuid.UUID, w reservation.Window, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	return l.with().FindActiveOverlapping(ctx, resourceID, w, excludeID)
}

func (l *liveReads) ExpiredApproved(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return l.with().ExpiredApproved(ctx, now, limit)
}

func copyReservation(r *reservation.Reservation) *reservation.Reservation {
	return reservation.Reconstruct(
		r.ID(), r.ResourceID(), r.RequesterID(),
		r.Window(), r.Decision(), r.Notes(),
		r.CreatedAt(), r.UpdatedAt(),
	)
}

func sortByStart(rs []*reservation.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Window().Start().Equal(rs[j].Window().Start()) {
			return rs[i].ID().String() < rs[j].ID().String()
		}
		return rs[i].Window().Start().Before(rs[j].Window().Start())
	})
}
