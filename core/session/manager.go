// Package session implements the dispatch session state machine: one booked
// vehicle traveling along a routed path toward one requester, animated by a
// periodic tick with arrival detection and time-remaining estimation.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resqride/resqride/core/events"
	"github.com/resqride/resqride/core/geo"
	"github.com/resqride/resqride/core/logger"
	"github.com/resqride/resqride/core/metrics"
	"github.com/resqride/resqride/core/model"
	"github.com/resqride/resqride/core/routing"
	"github.com/resqride/resqride/internal/eventbus"
)

// Manager owns the single active dispatch session. At most one booking is in
// flight at a time; Book is rejected while a previous booking is routing or
// enroute. All session state, including the tick loop, is released on every
// exit path: arrival, failure and explicit cancellation.
type Manager struct {
	cfg      Config
	provider routing.Provider
	bus      eventbus.EventBus
	logger   logger.Logger
	sink     metrics.Sink

	mu        sync.Mutex
	state     State
	id        uuid.UUID
	epoch     uint64
	vehicle   model.Vehicle
	requester model.Coordinate
	path      model.Path
	cursor    int
	total     time.Duration
	cum       []float64
	startedAt time.Time
	stopTick  context.CancelFunc
}

// Snapshot is a consistent copy of the session state for presentation.
type Snapshot struct {
	State     State            `json:"state"`
	SessionID uuid.UUID        `json:"session_id,omitempty"`
	Vehicle   *model.Vehicle   `json:"vehicle,omitempty"`
	Requester model.Coordinate `json:"requester"`
	Path      model.Path       `json:"path,omitempty"`
	Cursor    int              `json:"cursor"`
	Remaining time.Duration    `json:"remaining"`
	Arrived   bool             `json:"arrived"`
}

// NewManager creates a session manager.
func NewManager(cfg Config, provider routing.Provider, bus eventbus.EventBus, log logger.Logger, sink metrics.Sink) (*Manager, error) {
	if provider == nil || bus == nil || log == nil {
		return nil, fmt.Errorf("session: nil parameter provided to NewManager")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		cfg:      cfg,
		provider: provider,
		bus:      bus,
		logger:   log,
		sink:     sink,
		state:    StateIdle,
	}, nil
}

// Book starts a new dispatch session for the given vehicle and requester
// position. Valid only while idle; otherwise ErrInvalidState is returned and
// nothing changes. The route fetch runs asynchronously: success transitions
// the session to enroute and starts the tick loop, failure publishes
// BookingFailed and returns the session to idle.
func (m *Manager) Book(vehicle model.Vehicle, requester model.Coordinate) error {
	if err := vehicle.Validate(); err != nil {
		return fmt.Errorf("session: invalid vehicle: %w", err)
	}
	if err := requester.Validate(); err != nil {
		return fmt.Errorf("session: invalid requester position: %w", err)
	}

	m.mu.Lock()
	if m.state != StateIdle && m.state != StateArrived {
		m.mu.Unlock()
		return ErrInvalidState
	}
	m.reset()
	m.state = StateRouting
	m.id = uuid.New()
	m.vehicle = vehicle
	m.requester = requester
	m.startedAt = time.Now()
	epoch := m.epoch
	id := m.id
	m.mu.Unlock()

	m.logger.Debugw("booking accepted, fetching route", map[string]any{
		"session_id": id.String(),
		"vehicle_id": vehicle.ID,
	})

	go m.fetchRoute(epoch, vehicle.Position, requester)
	return nil
}

// fetchRoute is the single suspending operation of a session. The response is
// applied only if the session epoch is unchanged, so a route arriving after
// cancellation is discarded rather than resurrecting the booking.
func (m *Manager) fetchRoute(epoch uint64, start, end model.Coordinate) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RouteTimeout())
	defer cancel()

	route, err := m.provider.Route(ctx, start, end)
	if err == nil {
		err = route.Validate()
	}

	m.mu.Lock()
	if m.epoch != epoch || m.state != StateRouting {
		m.mu.Unlock()
		m.logger.Debugf("discarding stale route response for epoch %d", epoch)
		return
	}
	if err != nil {
		id, vid := m.id, m.vehicle.ID
		elapsed := time.Since(m.startedAt)
		m.reset()
		m.mu.Unlock()
		m.logger.Warnf("route fetch failed: %v", err)
		m.bus.Publish(events.BookingFailed{SessionID: id, VehicleID: vid, Reason: err.Error()})
		m.record(metrics.SessionOutcome{
			SessionID: id, VehicleID: vid,
			Outcome: metrics.OutcomeFailed, Reason: err.Error(),
			Elapsed: elapsed, Time: time.Now(),
		})
		return
	}

	m.path = route.Path
	m.total = route.Duration
	m.cursor = 0
	m.vehicle.Position = route.Path.Start()
	if m.cfg.DistanceWeightedETA {
		m.cum = geo.CumulativeMeters(route.Path)
	}
	m.state = StateEnroute

	tickCtx, stop := context.WithCancel(context.Background())
	m.stopTick = stop
	id, vid := m.id, m.vehicle.ID
	m.mu.Unlock()

	m.logger.Infof("vehicle %d enroute, %d path points, provider ETA %s", vid, len(route.Path), route.Duration)
	m.bus.Publish(events.BookingAccepted{SessionID: id, VehicleID: vid, Path: route.Path, Duration: route.Duration})

	go m.run(tickCtx, epoch)
}

// run drives the tick loop. Ticks never overlap: one goroutine consumes the
// ticker and each advance happens under the session lock, so a tick that is
// still firing when the next interval elapses simply delays it.
func (m *Manager) run(ctx context.Context, epoch uint64) {
	ticker := time.NewTicker(m.cfg.TickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !m.tick(epoch) {
				return
			}
		}
	}
}

// tick advances the cursor one step, moves the vehicle, publishes position
// and ETA updates and detects arrival. It reports whether the loop should
// keep running.
func (m *Manager) tick(epoch uint64) bool {
	m.mu.Lock()
	if m.epoch != epoch || m.state != StateEnroute {
		m.mu.Unlock()
		return false
	}

	last := len(m.path) - 1
	if m.cursor < last {
		m.cursor++
	}
	m.vehicle.Position = m.path[m.cursor]
	remaining := m.remainingLocked()

	pos := m.vehicle.Position
	id, vid := m.id, m.vehicle.ID
	cursor := m.cursor

	arrived := cursor == last || geo.HaversineMeters(pos, m.requester) < m.cfg.ArrivalThresholdM
	var elapsed time.Duration
	if arrived {
		remaining = 0
		m.state = StateArrived
		m.vehicle.Position = m.requester
		m.stopTick = nil
		elapsed = time.Since(m.startedAt)
	}
	m.mu.Unlock()

	m.bus.Publish(events.PositionUpdated{SessionID: id, VehicleID: vid, Position: pos})
	m.bus.Publish(events.ETAUpdated{SessionID: id, Remaining: remaining})
	m.record(metrics.PositionSample{
		SessionID: id, VehicleID: vid, Position: pos,
		Remaining: remaining, Cursor: cursor, Time: time.Now(),
	})

	if arrived {
		m.logger.Infof("vehicle %d arrived after %s", vid, elapsed.Round(time.Millisecond))
		m.bus.Publish(events.Arrived{SessionID: id, VehicleID: vid})
		m.record(metrics.SessionOutcome{
			SessionID: id, VehicleID: vid,
			Outcome: metrics.OutcomeArrived, Elapsed: elapsed, Time: time.Now(),
		})
		return false
	}
	return true
}

// remainingLocked estimates the travel time left. The default is the linear
// share of the provider duration over remaining path indices; when
// DistanceWeightedETA is set the share is weighted by remaining path distance.
// Callers must hold m.mu.
func (m *Manager) remainingLocked() time.Duration {
	last := len(m.path) - 1
	if m.state == StateArrived || last <= 0 || m.cursor >= last {
		return 0
	}
	if m.cfg.DistanceWeightedETA && len(m.cum) == len(m.path) {
		total := m.cum[last]
		if total <= 0 {
			return 0
		}
		frac := (total - m.cum[m.cursor]) / total
		return time.Duration(frac * float64(m.total))
	}
	frac := float64(last-m.cursor) / float64(last)
	return time.Duration(frac * float64(m.total))
}

// Cancel aborts the active booking. Valid while routing or enroute. The tick
// loop is stopped so no further position events fire, and a route response
// still in flight is discarded via the epoch bump.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	if m.state != StateRouting && m.state != StateEnroute {
		m.mu.Unlock()
		return ErrInvalidState
	}
	id, vid := m.id, m.vehicle.ID
	elapsed := time.Since(m.startedAt)
	m.reset()
	m.mu.Unlock()

	m.logger.Infof("session %s cancelled", id)
	m.bus.Publish(events.SessionCancelled{SessionID: id})
	m.record(metrics.SessionOutcome{
		SessionID: id, VehicleID: vid,
		Outcome: metrics.OutcomeCancelled, Elapsed: elapsed, Time: time.Now(),
	})
	return nil
}

// reset clears all per-booking state and releases the tick loop. Callers must
// hold m.mu.
func (m *Manager) reset() {
	m.epoch++
	if m.stopTick != nil {
		m.stopTick()
		m.stopTick = nil
	}
	m.state = StateIdle
	m.id = uuid.UUID{}
	m.vehicle = model.Vehicle{}
	m.requester = model.Coordinate{}
	m.path = nil
	m.cursor = 0
	m.total = 0
	m.cum = nil
	m.startedAt = time.Time{}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{
		State:     m.state,
		SessionID: m.id,
		Requester: m.requester,
		Cursor:    m.cursor,
		Remaining: m.remainingLocked(),
		Arrived:   m.state == StateArrived,
	}
	if m.state != StateIdle {
		v := m.vehicle
		snap.Vehicle = &v
		snap.Path = append(model.Path(nil), m.path...)
	}
	return snap
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Close cancels any active booking and releases the tick loop. Unlike Cancel
// it is valid in every state.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

func (m *Manager) record(v any) {
	var err error
	switch rec := v.(type) {
	case metrics.SessionOutcome:
		err = m.sink.RecordSessionOutcome(rec)
	case metrics.PositionSample:
		err = m.sink.RecordPositionSample(rec)
	}
	if err != nil {
		m.logger.Errorf("metrics sink: %v", err)
	}
}
