package draft

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Clock is the interface the orchestrator uses for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) clockwork.Timer
}

// OrchestratorApp defines what the orchestrator needs from the draft app.
type OrchestratorApp interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	MakePick(ctx context.Context, draftID, teamID, contestantID uuid.UUID) (*models.Draft, error)
	AutoAdvance(ctx context.Context, draftID uuid.UUID) (*models.Draft, error)
	FetchNextDeadline(ctx context.Context) (*NextDeadline, error)
	FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error)
}

// Orchestrator is a scheduled trigger for expired turns. It owns no draft
// state and no per-draft timers: it sleeps until the earliest derived
// deadline, then fires AutoAdvance (or auto-pick) through the same public
// operations any client could call. Losing a race to a real pick is expected.
type Orchestrator struct {
	app        OrchestratorApp
	strat      AutoPickStrategy
	batchSize  int32
	clock      Clock
	wakeCh     chan struct{}
	instanceID string

	// Worker pool configuration
	numWorkers int
	workCh     chan uuid.UUID

	// Track in-flight work to prevent duplicate processing
	inFlight   map[uuid.UUID]bool
	inFlightMu sync.Mutex
}

// NewOrchestrator creates a new draft orchestrator with worker pool.
func NewOrchestrator(app OrchestratorApp, strat AutoPickStrategy, batchSize int32) *Orchestrator {
	numWorkers := 10
	return &Orchestrator{
		app:        app,
		strat:      strat,
		batchSize:  batchSize,
		clock:      clockwork.NewRealClock(),
		wakeCh:     make(chan struct{}, 1),
		instanceID: uuid.New().String()[:8], // short ID for logging

		numWorkers: numWorkers,
		workCh:     make(chan uuid.UUID, numWorkers*2),
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// WithClock swaps the clock; tests pass a clockwork.FakeClock.
func (o *Orchestrator) WithClock(clock Clock) *Orchestrator {
	o.clock = clock
	return o
}

// Wake signals the scheduler that a sooner deadline may exist (e.g. after a
// pick landed).
func (o *Orchestrator) Wake() {
	select {
	case o.wakeCh <- struct{}{}:
	default:
	}
}

// RunScheduler loops forever, sleeping until the next deadline and firing
// expired turns into the worker pool.
func (o *Orchestrator) RunScheduler(ctx context.Context) error {
	log.Info().Str("instance", o.instanceID).Int("workers", o.numWorkers).Msg("scheduler started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	for i := 0; i < o.numWorkers; i++ {
		wg.Add(1)
		go o.worker(workerCtx, &wg, i)
	}

	defer func() {
		cancelWorkers()
		close(o.workCh)
		wg.Wait()
		log.Info().Str("instance", o.instanceID).Msg("all workers shut down")
	}()

	timer := o.clock.NewTimer(0)
	defer timer.Stop()

	const idlePollDuration = 5 * time.Second

	for {
		// Drain wake channel to prevent tight loops
		select {
		case <-o.wakeCh:
		default:
		}

		nd, err := o.app.FetchNextDeadline(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// No drafts in progress; idle until woken or poll interval
				timer.Reset(idlePollDuration)
				select {
				case <-timer.Chan():
					continue
				case <-o.wakeCh:
					continue
				case <-ctx.Done():
					log.Info().Str("instance", o.instanceID).Msg("shutdown during idle")
					return nil
				}
			}

			log.Error().Err(err).Str("instance", o.instanceID).Msg("error fetching next deadline")
			timer.Reset(time.Second)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				return nil
			}
		}

		if nd.Deadline != nil {
			wait := nd.Deadline.Sub(o.clock.Now())
			if wait > 0 {
				timer.Reset(wait)
				select {
				case <-timer.Chan():
				case <-o.wakeCh:
					continue
				case <-ctx.Done():
					log.Info().Str("instance", o.instanceID).Msg("shutdown during wait")
					return nil
				}
			}
		}

		due, err := o.app.FetchDraftsDueForPick(ctx, o.batchSize)
		if err != nil {
			log.Error().Err(err).Str("instance", o.instanceID).Msg("error fetching due drafts")
			timer.Reset(time.Second)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				return nil
			}
		}

		for _, draftID := range due {
			o.inFlightMu.Lock()
			if o.inFlight[draftID] {
				o.inFlightMu.Unlock()
				continue
			}
			o.inFlight[draftID] = true
			o.inFlightMu.Unlock()

			select {
			case <-ctx.Done():
				o.inFlightMu.Lock()
				delete(o.inFlight, draftID)
				o.inFlightMu.Unlock()
				log.Info().Str("instance", o.instanceID).Msg("shutdown while queueing timeouts")
				return nil
			case o.workCh <- draftID:
			}
		}
	}
}

// handleTimeout fires one expired turn: auto-pick when the draft allows it,
// otherwise forfeit the slot. A lost race against a real pick surfaces as a
// conflict/turn/state error and is not a failure.
func (o *Orchestrator) handleTimeout(ctx context.Context, draftID uuid.UUID) error {
	d, err := o.app.GetDraft(ctx, draftID)
	if err != nil {
		return err
	}
	if d.Status != models.DraftStatusInProgress {
		return nil
	}
	if deadline := d.PickDeadline(); deadline == nil || o.clock.Now().Before(*deadline) {
		// A pick landed between the due query and now; nothing to do.
		return nil
	}

	if d.Settings.AutoPickEnabled {
		teamID, contestantID, err := o.strat.SelectPick(ctx, d)
		if err != nil {
			log.Warn().Err(err).Str("draft_id", draftID.String()).Msg("auto-pick strategy failed, forfeiting turn")
		} else {
			_, err = o.app.MakePick(ctx, draftID, teamID, contestantID)
			if err == nil {
				o.Wake()
				return nil
			}
			if lostRace(err) {
				log.Debug().Err(err).Str("draft_id", draftID.String()).Msg("auto-pick lost race")
				return nil
			}
			return err
		}
	}

	if _, err := o.app.AutoAdvance(ctx, draftID); err != nil {
		if lostRace(err) {
			log.Debug().Err(err).Str("draft_id", draftID.String()).Msg("auto-advance lost race")
			return nil
		}
		return err
	}

	o.Wake()
	return nil
}

// lostRace reports whether err means another writer won the slot first.
func lostRace(err error) bool {
	switch KindOf(err) {
	case KindConflict, KindTurn, KindState:
		return true
	}
	return false
}

// worker processes draft timeouts from the work channel.
func (o *Orchestrator) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case draftID, ok := <-o.workCh:
			if !ok {
				return
			}

			log.Info().
				Str("draft_id", draftID.String()).
				Str("instance", o.instanceID).
				Int("worker_id", workerID).
				Msg("worker handling timeout")

			if err := o.handleTimeout(ctx, draftID); err != nil {
				log.Error().
					Err(err).
					Str("draft_id", draftID.String()).
					Str("instance", o.instanceID).
					Int("worker_id", workerID).
					Msg("worker timeout handling failed")
			}

			o.inFlightMu.Lock()
			delete(o.inFlight, draftID)
			o.inFlightMu.Unlock()
		}
	}
}
