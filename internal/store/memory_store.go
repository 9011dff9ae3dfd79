// internal/store/memory_store.go
package store

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/models"
)

// MemoryStore is the in-process RequestStore used by tests and credential-less
// development mode. Per-request mutual exclusion is a per-id mutex; the
// display sequence number is a single atomic counter.
type MemoryStore struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*models.CustomContentRequest

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex

	seq atomic.Int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: make(map[uuid.UUID]*models.CustomContentRequest),
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *MemoryStore) lockFor(id uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *MemoryStore) Create(_ context.Context, req *models.CustomContentRequest) error {
	now := time.Now()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.SequenceNumber = s.seq.Add(1)
	req.CreatedAt = now
	req.UpdatedAt = now
	stampNewRecords(req, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.CustomContentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, apperrors.NotFound(id.String())
	}
	return cloneRequest(req), nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID, role models.UserType) ([]models.CustomContentRequest, error) {
	return s.filter(func(r *models.CustomContentRequest) bool {
		switch role {
		case models.UserTypeFan:
			return r.FanID == userID
		case models.UserTypeCreator:
			return r.CreatorID == userID
		default:
			return r.FanID == userID || r.CreatorID == userID
		}
	}), nil
}

func (s *MemoryStore) ListByPlatform(_ context.Context, platformID uuid.UUID) ([]models.CustomContentRequest, error) {
	return s.filter(func(r *models.CustomContentRequest) bool {
		return r.PlatformID == platformID
	}), nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status models.RequestStatus) ([]models.CustomContentRequest, error) {
	return s.filter(func(r *models.CustomContentRequest) bool {
		return r.Status == status
	}), nil
}

func (s *MemoryStore) filter(match func(*models.CustomContentRequest) bool) []models.CustomContentRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.CustomContentRequest
	for _, r := range s.requests {
		if match(r) {
			out = append(out, *cloneRequest(r))
		}
	}
	// Newest first
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *MemoryStore) Transition(_ context.Context, id uuid.UUID, action string,
	allowed []models.RequestStatus,
	mutate func(req *models.CustomContentRequest) error) (*models.CustomContentRequest, error) {

	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	stored, ok := s.requests[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound(id.String())
	}

	if !statusAllowed(stored.Status, allowed) {
		return nil, apperrors.InvalidStateTransition(action, stored.Status)
	}

	// Mutate a working copy; on error the stored entity stays untouched.
	working := cloneRequest(stored)
	if err := mutate(working); err != nil {
		return nil, err
	}

	now := time.Now()
	stampNewRecords(working, now)
	working.UpdatedAt = now

	s.mu.Lock()
	s.requests[id] = cloneRequest(working)
	s.mu.Unlock()

	return working, nil
}

func (s *MemoryStore) UndispatchedEvents(_ context.Context, limit int) ([]models.RequestEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []models.RequestEvent
	for _, r := range s.requests {
		for _, e := range r.Events {
			if e.DispatchedAt == nil {
				events = append(events, e)
			}
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *MemoryStore) MarkEventDispatched(_ context.Context, eventID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, r := range s.requests {
		for i := range r.Events {
			if r.Events[i].ID == eventID {
				r.Events[i].DispatchedAt = &now
				return nil
			}
		}
	}
	return apperrors.NotFound(eventID.String())
}

func cloneRequest(src *models.CustomContentRequest) *models.CustomContentRequest {
	dst := *src
	dst.SpecialRequirements = append([]string(nil), src.SpecialRequirements...)
	dst.Offers = append([]models.NegotiationOffer(nil), src.Offers...)
	dst.Revisions = append([]models.RevisionRequest(nil), src.Revisions...)
	dst.Events = append([]models.RequestEvent(nil), src.Events...)
	dst.NegotiatedAmount = clonePtr(src.NegotiatedAmount)
	dst.FinalAmount = clonePtr(src.FinalAmount)
	dst.DueDate = clonePtr(src.DueDate)
	dst.TermsAcceptedAt = clonePtr(src.TermsAcceptedAt)
	dst.NoChargebackSignedAt = clonePtr(src.NoChargebackSignedAt)
	dst.DeliveredAt = clonePtr(src.DeliveredAt)
	dst.ReviewedAt = clonePtr(src.ReviewedAt)
	dst.CompletedAt = clonePtr(src.CompletedAt)
	dst.CancelledAt = clonePtr(src.CancelledAt)
	for i := range dst.Offers {
		dst.Offers[i].ResolvedAt = clonePtr(dst.Offers[i].ResolvedAt)
	}
	for i := range dst.Revisions {
		dst.Revisions[i].CompletedAt = clonePtr(dst.Revisions[i].CompletedAt)
	}
	for i := range dst.Events {
		dst.Events[i].DispatchedAt = clonePtr(dst.Events[i].DispatchedAt)
	}
	return &dst
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
