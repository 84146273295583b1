package usecases

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/ports"
	"github.com/kumbhsarthi/sarthi/internal/pkg/geospatial"
)

const (
	// MaxCases bounds the in-memory ring: only the most recent entries are kept.
	MaxCases = 50

	// nominalDetectionSeconds is recorded as the detection-time metric.
	// True voice-trigger latency is not measured by this service.
	nominalDetectionSeconds = 3

	// pendingUpdateGrace is how long an UPDATE for an unknown id is buffered
	// waiting for its INSERT to arrive over the relay.
	pendingUpdateGrace = 30 * time.Second
)

type pendingUpdate struct {
	c          domain.EmergencyCase
	receivedAt time.Time
}

// EmergencyService records emergency reports and fans out changes to all
// observers. The in-memory ring is authoritative for the local process;
// the snapshot store and relay provide durability and cross-instance
// convergence on a best-effort basis.
type EmergencyService struct {
	mu      sync.Mutex
	cases   []domain.EmergencyCase // most-recent-first
	pending map[string]pendingUpdate

	snapshots ports.SnapshotStore
	publisher ports.EmergencyPublisher
	zones     map[string]domain.GeoPoint

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int

	now func() time.Time
}

// EmergencyOption configures an EmergencyService.
type EmergencyOption func(*EmergencyService)

// WithClock overrides the time source. Test use.
func WithClock(now func() time.Time) EmergencyOption {
	return func(s *EmergencyService) { s.now = now }
}

// WithZoneAnchors supplies the zone label map used to tag new cases.
func WithZoneAnchors(zones map[string]domain.GeoPoint) EmergencyOption {
	return func(s *EmergencyService) { s.zones = zones }
}

// NewEmergencyService creates the store with injected persistence and relay
// dependencies. Both may be nil: the store then runs local-only.
// Any persisted snapshot is loaded eagerly; a corrupt snapshot is logged and
// treated as an empty store.
func NewEmergencyService(ctx context.Context, snapshots ports.SnapshotStore, publisher ports.EmergencyPublisher, opts ...EmergencyOption) *EmergencyService {
	s := &EmergencyService{
		pending:     make(map[string]pendingUpdate),
		snapshots:   snapshots,
		publisher:   publisher,
		subscribers: make(map[int]func()),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if snapshots != nil {
		data, err := snapshots.Load(ctx)
		if err != nil {
			slog.Warn("emergency snapshot unavailable, starting empty", "error", err)
		} else if len(data) > 0 {
			var cases []domain.EmergencyCase
			if err := json.Unmarshal(data, &cases); err != nil {
				slog.Warn("emergency snapshot corrupt, starting empty", "error", err)
			} else {
				if len(cases) > MaxCases {
					cases = cases[:MaxCases]
				}
				s.cases = cases
			}
		}
	}

	return s
}

// newCaseID synthesizes a short operator-friendly case id.
func newCaseID() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return "CASE-" + string(b)
}

// zoneFor tags a coordinate with the nearest zone label.
func (s *EmergencyService) zoneFor(p domain.GeoPoint) string {
	best := "Unknown"
	bestDist := -1.0
	for zone, anchor := range s.zones {
		d := geospatial.Haversine(p.Lat, p.Lng, anchor.Lat, anchor.Lng)
		if bestDist < 0 || d < bestDist {
			best, bestDist = zone, d
		}
	}
	return best
}

// Report records a new emergency case and returns its id. The case is
// prepended to the ring, persisted, announced locally, and published to the
// relay fire-and-forget.
func (s *EmergencyService) Report(ctx context.Context, typ domain.EmergencyType, lat, lng float64, transcript string) (string, error) {
	if !typ.Valid() {
		return "", fmt.Errorf("unknown emergency type %q", typ)
	}
	if err := domain.ValidateCoordinate(lat, lng); err != nil {
		return "", err
	}

	now := s.now().UTC()
	iso := now.Format(time.RFC3339)
	c := domain.EmergencyCase{
		ID:                newCaseID(),
		Type:              typ,
		Zone:              s.zoneFor(domain.GeoPoint{Lat: lat, Lng: lng}),
		Timestamp:         now,
		Status:            domain.StatusNew,
		Location:          domain.GeoPoint{Lat: lat, Lng: lng},
		Language:          DetectLanguage(transcript),
		TranscriptSnippet: strings.TrimSpace(transcript),
		Timeline:          domain.Timeline{VoiceTrigger: iso, Classified: iso},
		Metrics:           domain.CaseMetrics{DetectionTime: nominalDetectionSeconds},
		Version:           1,
	}

	s.mu.Lock()
	s.insertLocked(c)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()

	if s.publisher != nil {
		if err := s.publisher.PublishInsert(ctx, &c); err != nil {
			slog.Warn("relay insert publish failed", "case", c.ID, "error", err)
		}
	}

	return c.ID, nil
}

// UpdateStatus moves a case forward through its lifecycle. Unknown ids and
// backward transitions are rejected and leave the store unchanged.
func (s *EmergencyService) UpdateStatus(ctx context.Context, id string, status domain.CaseStatus) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", id, domain.ErrCaseNotFound)
	}

	c := &s.cases[idx]
	if err := domain.ValidateTransition(c.Status, status); err != nil {
		s.mu.Unlock()
		return err
	}

	c.Status = status
	c.Version++
	s.stampTimelineLocked(c, status)
	updated := *c
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()

	if s.publisher != nil {
		if err := s.publisher.PublishUpdate(ctx, &updated); err != nil {
			slog.Warn("relay update publish failed", "case", updated.ID, "error", err)
		}
	}

	return nil
}

// stampTimelineLocked appends the lifecycle milestone for the new status and
// derives the corresponding duration metric.
func (s *EmergencyService) stampTimelineLocked(c *domain.EmergencyCase, status domain.CaseStatus) {
	now := s.now().UTC()
	iso := now.Format(time.RFC3339)
	elapsed := int(now.Sub(c.Timestamp).Seconds())

	switch status {
	case domain.StatusDispatching, domain.StatusDispatched:
		c.Timeline.Dispatched = iso
		c.Metrics.DispatchTime = elapsed
	case domain.StatusOnScene:
		c.Timeline.Acknowledged = iso
		c.Metrics.ResponseTime = elapsed
	case domain.StatusResolved:
		c.Timeline.Resolved = iso
		c.Metrics.ResolutionTime = elapsed
	}
}

// List returns all cases, most-recent-first.
func (s *EmergencyService) List(ctx context.Context) []domain.EmergencyCase {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.EmergencyCase, len(s.cases))
	copy(out, s.cases)
	return out
}

// GetByID returns a single case by id.
func (s *EmergencyService) GetByID(ctx context.Context, id string) (*domain.EmergencyCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("get %s: %w", id, domain.ErrCaseNotFound)
	}
	c := s.cases[idx]
	return &c, nil
}

// ApplyRemote merges an event relayed from another instance.
// INSERTs are idempotent by id, defending against echo of our own publishes.
// UPDATEs must carry a version strictly above the local one; updates for ids
// not yet seen are buffered briefly in case the INSERT is still in flight.
func (s *EmergencyService) ApplyRemote(ctx context.Context, ev *ports.EmergencyEvent) error {
	switch ev.Type {
	case ports.EventInsert:
		return s.applyRemoteInsert(ctx, ev.Data)
	case ports.EventUpdate:
		return s.applyRemoteUpdate(ctx, ev.Data)
	default:
		return fmt.Errorf("unknown relay event type %q", ev.Type)
	}
}

func (s *EmergencyService) applyRemoteInsert(ctx context.Context, c domain.EmergencyCase) error {
	s.mu.Lock()
	if s.indexLocked(c.ID) >= 0 {
		s.mu.Unlock()
		return nil // already known: our own echo or a duplicate
	}
	s.insertLocked(c)

	// A buffered update may have raced ahead of this insert. Buffers older
	// than the grace period are discarded, not applied.
	if p, ok := s.pending[c.ID]; ok {
		delete(s.pending, c.ID)
		if s.now().Sub(p.receivedAt) <= pendingUpdateGrace && p.c.Version > c.Version {
			idx := s.indexLocked(c.ID)
			s.cases[idx] = p.c
		}
	}

	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *EmergencyService) applyRemoteUpdate(ctx context.Context, c domain.EmergencyCase) error {
	s.mu.Lock()
	idx := s.indexLocked(c.ID)
	if idx < 0 {
		s.gcPendingLocked()
		s.pending[c.ID] = pendingUpdate{c: c, receivedAt: s.now()}
		s.mu.Unlock()
		slog.Debug("buffered update for unknown case", "case", c.ID)
		return nil
	}

	if c.Version <= s.cases[idx].Version {
		s.mu.Unlock()
		return fmt.Errorf("apply update %s v%d: %w", c.ID, c.Version, domain.ErrStaleVersion)
	}

	s.cases[idx] = c
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return nil
}

// gcPendingLocked drops buffered updates whose grace period has lapsed.
func (s *EmergencyService) gcPendingLocked() {
	cutoff := s.now().Add(-pendingUpdateGrace)
	for id, p := range s.pending {
		if p.receivedAt.Before(cutoff) {
			delete(s.pending, id)
		}
	}
}

// Clear wipes the ring and snapshot. Test/reset use only.
func (s *EmergencyService) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cases = nil
	s.pending = make(map[string]pendingUpdate)
	if s.snapshots != nil {
		if err := s.snapshots.Clear(ctx); err != nil {
			slog.Warn("snapshot clear failed", "error", err)
		}
	}
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers a change listener. Listeners carry no payload: they
// re-read the store to learn what changed. All listeners run synchronously
// on every mutation. The returned func removes the subscription.
func (s *EmergencyService) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *EmergencyService) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// insertLocked prepends a case and evicts beyond MaxCases.
func (s *EmergencyService) insertLocked(c domain.EmergencyCase) {
	s.cases = append([]domain.EmergencyCase{c}, s.cases...)
	if len(s.cases) > MaxCases {
		s.cases = s.cases[:MaxCases]
	}
}

func (s *EmergencyService) indexLocked(id string) int {
	for i := range s.cases {
		if s.cases[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked overwrites the snapshot wholesale. Persistence failures are
// logged, never surfaced: the local ring stays authoritative.
func (s *EmergencyService) persistLocked(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	data, err := json.Marshal(s.cases)
	if err != nil {
		slog.Error("marshal emergency snapshot", "error", err)
		return
	}
	if err := s.snapshots.Save(ctx, data); err != nil {
		slog.Warn("save emergency snapshot", "error", err)
	}
}
