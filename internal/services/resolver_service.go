// internal/services/resolver_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/certview/internal/models"
	"github.com/javajoker/certview/internal/utils"
)

type ResolutionState int

const (
	StateLoading ResolutionState = iota
	StateFound
	StateNotFound
	StateFailed
)

func (s ResolutionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one public identifier.
// Product is set only in StateFound; Err only in StateNotFound and StateFailed.
type Resolution struct {
	State    ResolutionState
	PublicID string
	Product  *models.PublicProduct
	Err      error
}

type Resolver interface {
	Resolve(ctx context.Context, publicID string) Resolution
}

type ProductResolver struct {
	lookup ProductLookup
	logger *logrus.Logger
}

func NewProductResolver(lookup ProductLookup, logger *logrus.Logger) *ProductResolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductResolver{
		lookup: lookup,
		logger: logger,
	}
}

// Resolve issues at most one lookup. It never retries and never caches.
func (r *ProductResolver) Resolve(ctx context.Context, publicID string) Resolution {
	if publicID == "" {
		observeLookup(outcomeMissingIdentifier, 0)
		return Resolution{State: StateFailed, Err: ErrMissingIdentifier}
	}

	// Identifiers outside the public alphabet cannot exist in the view.
	if !utils.IsValidPublicID(publicID) {
		observeLookup(outcomeNotFound, 0)
		return Resolution{State: StateNotFound, PublicID: publicID, Err: ErrRecordNotFound}
	}

	start := time.Now()
	product, err := r.lookup.FindByPublicID(ctx, publicID)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			observeLookup(outcomeNotFound, elapsed)
			return Resolution{State: StateNotFound, PublicID: publicID, Err: ErrRecordNotFound}
		}

		entry := r.logger.WithError(err).WithField("public_id", publicID)
		if ctx.Err() != nil {
			entry.Debug("Product lookup abandoned")
		} else {
			entry.Error("Product lookup failed")
		}
		observeLookup(outcomeFailed, elapsed)
		return Resolution{State: StateFailed, PublicID: publicID, Err: ErrLookupFailed}
	}

	if err := utils.ValidateStruct(product); err != nil {
		r.logger.WithFields(logrus.Fields{
			"public_id": publicID,
			"fields":    utils.GetValidationErrors(err),
		}).Error("Product record failed validation")
		observeLookup(outcomeFailed, elapsed)
		return Resolution{State: StateFailed, PublicID: publicID, Err: ErrLookupFailed}
	}

	observeLookup(outcomeFound, elapsed)
	return Resolution{State: StateFound, PublicID: publicID, Product: product}
}

var ErrTrackerClosed = errors.New("resolution tracker closed")

// ResolutionTracker holds the resolver state of one page instance. Only the
// result of the lookup for the current identifier is ever applied; results
// that arrive after the identifier changed or after Close are dropped.
type ResolutionTracker struct {
	resolver Resolver

	mu         sync.Mutex
	generation uint64
	started    bool
	settled    bool
	closed     bool
	publicID   string
	current    Resolution
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewResolutionTracker(resolver Resolver) *ResolutionTracker {
	return &ResolutionTracker{
		resolver: resolver,
		current:  Resolution{State: StateLoading},
	}
}

// Track starts resolving publicID unless it is already the tracked identifier.
func (t *ResolutionTracker) Track(ctx context.Context, publicID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || (t.started && t.publicID == publicID) {
		return
	}

	t.abandonLocked()
	t.generation++
	gen := t.generation
	done := make(chan struct{})

	lookupCtx, cancel := context.WithCancel(ctx)
	t.started = true
	t.settled = false
	t.publicID = publicID
	t.current = Resolution{State: StateLoading, PublicID: publicID}
	t.cancel = cancel
	t.done = done

	go func() {
		res := t.resolver.Resolve(lookupCtx, publicID)
		t.apply(gen, res)
	}()
}

func (t *ResolutionTracker) apply(gen uint64, res Resolution) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || gen != t.generation {
		return
	}

	t.current = res
	t.settled = true
	t.cancel()
	close(t.done)
}

// Current returns the latest applied state without blocking.
func (t *ResolutionTracker) Current() Resolution {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Wait blocks until the tracked identifier settles, the tracker is closed or
// ctx is done. On ctx expiry it returns the current (loading) state and ctx.Err().
func (t *ResolutionTracker) Wait(ctx context.Context) (Resolution, error) {
	for {
		t.mu.Lock()
		switch {
		case t.closed:
			res := t.current
			t.mu.Unlock()
			return res, ErrTrackerClosed
		case !t.started || t.settled:
			res := t.current
			t.mu.Unlock()
			return res, nil
		}
		done := t.done
		t.mu.Unlock()

		select {
		case <-done:
			// Either settled or superseded by a newer identifier; re-check.
		case <-ctx.Done():
			return t.Current(), ctx.Err()
		}
	}
}

// Close abandons any in-flight lookup. The tracker cannot be reused.
func (t *ResolutionTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.abandonLocked()
	t.closed = true
}

func (t *ResolutionTracker) abandonLocked() {
	if t.cancel != nil {
		t.cancel()
	}
	if t.started && !t.settled {
		close(t.done)
		t.settled = true
	}
}
