package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"collabclient/internal/domain"
)

type reconciliationEngine struct {
	identity     domain.IdentityProvider
	joinRequests domain.JoinRequestGateway
	invitations  domain.InvitationGateway
	projects     domain.ProjectGateway
	logger       *slog.Logger
	callTimeout  time.Duration

	mu      sync.Mutex
	state   domain.ReconciledState
	gen     uint64
	subs    map[int]chan domain.ReconciledState
	nextSub int
}

// NewReconciliationEngine creates the Reconciler over the three gateways.
// callTimeout bounds each individual gateway call; zero disables the bound.
func NewReconciliationEngine(
	identity domain.IdentityProvider,
	joinRequests domain.JoinRequestGateway,
	invitations domain.InvitationGateway,
	projects domain.ProjectGateway,
	logger *slog.Logger,
	callTimeout time.Duration,
) domain.Reconciler {
	return &reconciliationEngine{
		identity:     identity,
		joinRequests: joinRequests,
		invitations:  invitations,
		projects:     projects,
		logger:       logger,
		callTimeout:  callTimeout,
		state:        domain.NewReconciledState(nil, nil, nil, 0, time.Time{}),
		subs:         make(map[int]chan domain.ReconciledState),
	}
}

func (e *reconciliationEngine) State() domain.ReconciledState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *reconciliationEngine) Subscribe() (<-chan domain.ReconciledState, func()) {
	// Buffer of one: a slow consumer misses intermediate snapshots but the
	// channel always holds the latest published one.
	ch := make(chan domain.ReconciledState, 1)
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (e *reconciliationEngine) Refresh(ctx context.Context) error {
	return e.Synchronize(ctx)
}

// Synchronize runs the two-phase parallel fetch plan and atomically
// replaces the state. Each invocation captures a generation token at start;
// the result is published only if no newer invocation has started since, so
// a slow stale round-trip can never overwrite a fresh one.
func (e *reconciliationEngine) Synchronize(ctx context.Context) error {
	userID, err := e.identity.CurrentUserID()
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	state, err := e.fetch(ctx, userID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		e.logger.Debug("discarding stale synchronize result", "generation", gen)
		return nil
	}
	e.state = state
	// Broadcast under the mutex: cancel closes channels under the same lock,
	// so no send can race a close, and snapshots reach subscribers in the
	// same order they become State(). The sends are non-blocking, so holding
	// the lock cannot deadlock on a slow consumer.
	for _, ch := range e.subs {
		// Non-blocking replace: drop the stale buffered snapshot, if any,
		// then offer the new one.
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
	return nil
}

// fetch assembles a new ReconciledState without touching engine state.
func (e *reconciliationEngine) fetch(ctx context.Context, userID string) (domain.ReconciledState, error) {
	var (
		wg       sync.WaitGroup
		sent     []*domain.JoinRequest
		sentErr  error
		invs     []*domain.Invitation
		invErr   error
		projs    []*domain.ProjectRef
		projsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		cctx, cancel := e.callContext(ctx)
		defer cancel()
		sent, sentErr = e.joinRequests.ListMine(cctx)
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := e.callContext(ctx)
		defer cancel()
		invs, invErr = e.invitations.ListReceived(cctx)
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := e.callContext(ctx)
		defer cancel()
		projs, projsErr = e.projects.ListMine(cctx)
	}()
	wg.Wait()

	var errs []error
	for _, err := range []error{sentErr, invErr, projsErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return domain.ReconciledState{}, &domain.AggregationError{Errs: errs}
	}

	var owned []*domain.ProjectRef
	for _, p := range projs {
		if p.OwnedBy(userID) {
			owned = append(owned, p)
		}
	}

	// Second phase: one concurrent fetch per owned project. A failed
	// per-project fetch degrades to zero requests for that project instead
	// of blanking the whole received view.
	perProject := make([][]*domain.JoinRequest, len(owned))
	perProjectErr := make([]error, len(owned))
	wg.Add(len(owned))
	for i, p := range owned {
		go func(i int, p *domain.ProjectRef) {
			defer wg.Done()
			cctx, cancel := e.callContext(ctx)
			defer cancel()
			perProject[i], perProjectErr[i] = e.joinRequests.ListForProject(cctx, p.ID)
		}(i, p)
	}
	wg.Wait()

	warnings := 0
	var received []*domain.JoinRequest
	for i, p := range owned {
		if err := perProjectErr[i]; err != nil {
			warnings++
			e.logger.Warn("join request fetch failed for owned project",
				"project_id", p.ID,
				"error", err,
			)
			continue
		}
		received = append(received, perProject[i]...)
	}

	return domain.NewReconciledState(sent, invs, received, warnings, time.Now()), nil
}

func (e *reconciliationEngine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.callTimeout > 0 {
		return context.WithTimeout(ctx, e.callTimeout)
	}
	return context.WithCancel(ctx)
}

func (e *reconciliationEngine) RespondToInvitation(ctx context.Context, invitationID string, decision domain.InvitationDecision) error {
	prev := e.State().FindInvitation(invitationID)

	cctx, cancel := e.callContext(ctx)
	defer cancel()
	updated, err := e.invitations.Respond(cctx, invitationID, decision)
	if err != nil {
		return err
	}
	if prev != nil && prev.Status.Terminal() && updated.Status != prev.Status {
		return fmt.Errorf("invitation %s left terminal status %s: %w", invitationID, prev.Status, domain.ErrProtocol)
	}

	return e.resynchronize(ctx, "respondToInvitation")
}

func (e *reconciliationEngine) RespondToJoinRequest(ctx context.Context, requestID string, decision domain.JoinRequestDecision) error {
	prev := e.State().FindReceivedJoinRequest(requestID)

	cctx, cancel := e.callContext(ctx)
	defer cancel()

	var (
		updated *domain.JoinRequest
		err     error
	)
	switch decision {
	case domain.JoinRequestDecisionAccept:
		updated, err = e.joinRequests.Accept(cctx, requestID)
	case domain.JoinRequestDecisionReject:
		updated, err = e.joinRequests.Reject(cctx, requestID)
	default:
		return fmt.Errorf("unknown join request decision %q", decision)
	}
	if err != nil {
		return err
	}
	if prev != nil && prev.Status.Terminal() && updated.Status != prev.Status {
		return fmt.Errorf("join request %s left terminal status %s: %w", requestID, prev.Status, domain.ErrProtocol)
	}

	return e.resynchronize(ctx, "respondToJoinRequest")
}

func (e *reconciliationEngine) CancelSentJoinRequest(ctx context.Context, requestID string) error {
	// The request may be absent from the snapshot when the engine is stale;
	// the gateway remains the authority in that case.
	prev := e.State().FindSentJoinRequest(requestID)

	cctx, cancel := e.callContext(ctx)
	defer cancel()
	updated, err := e.joinRequests.Cancel(cctx, requestID)
	if err != nil {
		return err
	}
	if prev != nil && prev.Status.Terminal() && updated.Status != prev.Status {
		return fmt.Errorf("join request %s left terminal status %s: %w", requestID, prev.Status, domain.ErrProtocol)
	}

	return e.resynchronize(ctx, "cancelSentJoinRequest")
}

func (e *reconciliationEngine) SubmitJoinRequest(ctx context.Context, projectID, message string) error {
	cctx, cancel := e.callContext(ctx)
	defer cancel()
	if _, err := e.joinRequests.Create(cctx, projectID, message); err != nil {
		return err
	}
	return e.resynchronize(ctx, "submitJoinRequest")
}

// resynchronize refreshes state after a successful mutation. The mutation
// itself already applied server-side; a failed refresh leaves the previous
// consistent snapshot visible and reports the refresh failure to the caller.
func (e *reconciliationEngine) resynchronize(ctx context.Context, op string) error {
	if err := e.Synchronize(ctx); err != nil {
		return fmt.Errorf("resynchronize after %s: %w", op, err)
	}
	return nil
}
