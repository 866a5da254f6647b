package save

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/game"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/storage"
)

// LoadReport summarizes a successful load or import
type LoadReport struct {
	SavedAt    time.Time `json:"savedAt,omitempty"`
	ReadyCrops int       `json:"readyCrops"`
	ReadyTrees int       `json:"readyTrees"`
}

// WelcomeMessage is shown when tiles finished growing while the game was closed
func (r LoadReport) WelcomeMessage() string {
	if r.ReadyCrops+r.ReadyTrees == 0 {
		return ""
	}
	return fmt.Sprintf("Welcome back! %d %s and %d %s are ready to harvest!",
		r.ReadyCrops, plural(r.ReadyCrops, "crop"), r.ReadyTrees, plural(r.ReadyTrees, "tree"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Status describes the save slots
type Status struct {
	HasSave         bool      `json:"hasSave"`
	HasBackup       bool      `json:"hasBackup"`
	RecoveryPending bool      `json:"recoveryPending"`
	LastSavedAt     time.Time `json:"lastSavedAt,omitempty"`
}

// Service moves the game between memory and a storage.Store
type Service struct {
	game  *game.Game
	store storage.Store
	bus   game.Publisher

	mu              sync.Mutex
	recoveryPending bool
	lastSavedAt     time.Time
}

// Option configures a Service
type Option func(*Service)

// WithPublisher emits game.saved and game.loaded events to p
func WithPublisher(p game.Publisher) Option {
	return func(s *Service) { s.bus = p }
}

// NewService binds g to store
func NewService(g *game.Game, store storage.Store, opts ...Option) *Service {
	s := &Service{game: g, store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes the current state to the main slot. Storage failures wrap
// ErrStorage and leave the game untouched.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	saved, err := s.saveLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(ctx, saved)
	return nil
}

// saveLocked writes the live state and returns the event to publish once
// the mutex is released
func (s *Service) saveLocked(ctx context.Context) (event.Event, error) {
	now := s.game.Now()
	data, err := Encode(s.game.Snapshot(), now)
	if err != nil {
		return event.Event{}, err
	}
	if err := s.writeMain(ctx, data, now); err != nil {
		return event.Event{}, err
	}
	return s.savedEvent(now), nil
}

func (s *Service) writeMain(ctx context.Context, data []byte, now time.Time) error {
	if err := s.store.Write(ctx, SlotMain, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	s.lastSavedAt = now
	logger.FromContext(ctx).Debug(LogMsgSaved, "bytes", len(data))
	return nil
}

// Load replaces the live state with the main slot. A missing slot returns
// ErrNoSave; unusable data returns *RecoveryRequiredError and marks recovery
// as pending without touching the game.
func (s *Service) Load(ctx context.Context) (LoadReport, error) {
	report, err := s.load(ctx)
	if err != nil {
		return LoadReport{}, err
	}
	s.publish(ctx, s.loadedEvent(report))
	return report, nil
}

func (s *Service) load(ctx context.Context) (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)
	data, err := s.read(ctx, SlotMain)
	if errors.Is(err, storage.ErrSlotNotFound) {
		log.Info(LogMsgNoSave)
		return LoadReport{}, domain.ErrNoSave
	}
	if err != nil {
		return LoadReport{}, err
	}

	d, err := s.decode(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptSave) || errors.Is(err, domain.ErrUnsupportedVersion) {
			s.recoveryPending = true
			log.Error(LogMsgCorruptSave, "error", err)
			return LoadReport{}, &RecoveryRequiredError{Cause: err, Options: RecoveryOptions}
		}
		return LoadReport{}, err
	}

	report := s.restore(ctx, d)
	s.recoveryPending = false
	log.Info(LogMsgLoaded, "ready_crops", report.ReadyCrops, "ready_trees", report.ReadyTrees)
	return report, nil
}

// ExportText renders the live state as base64 text
func (s *Service) ExportText(ctx context.Context) (string, error) {
	return EncodeText(s.game.Snapshot(), s.game.Now())
}

// ImportText decodes text fully before touching anything. Without confirm it
// returns ErrConfirmationRequired; with it the current state is copied to the
// backup slot and the import is written to the main slot before it replaces
// the live game. A failed write leaves the game as it was.
func (s *Service) ImportText(ctx context.Context, text string, confirm bool) (LoadReport, error) {
	log := logger.FromContext(ctx)

	data, err := DecodeText(text)
	if err != nil {
		log.Warn(LogMsgImportRejected, "error", err)
		return LoadReport{}, err
	}
	state, err := Deserialize(ctx, data, s.game.Catalog(), s.game.Now())
	if err != nil {
		log.Warn(LogMsgImportRejected, "error", err)
		return LoadReport{}, err
	}
	if !confirm {
		return LoadReport{}, domain.ErrConfirmationRequired
	}

	report, events, err := s.importState(ctx, state)
	if err != nil {
		return LoadReport{}, err
	}
	log.Info(LogMsgImported, "ready_crops", report.ReadyCrops, "ready_trees", report.ReadyTrees)
	s.publish(ctx, events...)
	return report, nil
}

func (s *Service) importState(ctx context.Context, state game.State) (LoadReport, []event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.game.Now()
	data, err := Encode(state, now)
	if err != nil {
		return LoadReport{}, nil, err
	}
	if err := s.writeBackup(ctx); err != nil {
		return LoadReport{}, nil, err
	}
	if err := s.writeMain(ctx, data, now); err != nil {
		return LoadReport{}, nil, err
	}

	report := s.restore(ctx, decoded{state: state})
	s.recoveryPending = false
	return report, []event.Event{s.savedEvent(now), s.loadedEvent(report)}, nil
}

// Recover runs one of RecoveryOptions
func (s *Service) Recover(ctx context.Context, option string) (LoadReport, error) {
	switch option {
	case RecoverRestoreBackup:
		return s.RestoreBackup(ctx)
	case RecoverReset:
		return LoadReport{}, s.ResetToDefaults(ctx)
	case RecoverDiscard:
		return LoadReport{}, s.DiscardCorrupt(ctx)
	}
	return LoadReport{}, fmt.Errorf("%w: recovery option %q", domain.ErrInvalidInput, option)
}

// RestoreBackup saves the backup slot as the main save, then loads it
func (s *Service) RestoreBackup(ctx context.Context) (LoadReport, error) {
	report, events, err := s.restoreBackup(ctx)
	if err != nil {
		return LoadReport{}, err
	}
	logger.FromContext(ctx).Info(LogMsgBackupRestored)
	s.publish(ctx, events...)
	return report, nil
}

func (s *Service) restoreBackup(ctx context.Context) (LoadReport, []event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read(ctx, SlotBackup)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return LoadReport{}, nil, domain.ErrNoBackup
	}
	if err != nil {
		return LoadReport{}, nil, err
	}

	d, err := s.decode(ctx, data)
	if err != nil {
		return LoadReport{}, nil, err
	}
	now := s.game.Now()
	main, err := Encode(d.state, now)
	if err != nil {
		return LoadReport{}, nil, err
	}
	if err := s.writeMain(ctx, main, now); err != nil {
		return LoadReport{}, nil, err
	}

	report := s.restore(ctx, d)
	s.lastSavedAt = now
	s.recoveryPending = false
	return report, []event.Event{s.savedEvent(now), s.loadedEvent(report)}, nil
}

// ResetToDefaults starts a new game and saves it over the main slot. If the
// save fails the previous state is put back.
func (s *Service) ResetToDefaults(ctx context.Context) error {
	s.mu.Lock()
	previous := s.game.Snapshot()
	s.game.Reset(ctx)
	saved, err := s.saveLocked(ctx)
	if err != nil {
		s.game.Restore(ctx, previous)
		s.mu.Unlock()
		return err
	}
	s.recoveryPending = false
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgResetToDefaults)
	s.publish(ctx, saved)
	return nil
}

// DiscardCorrupt deletes both slots and starts a new game
func (s *Service) DiscardCorrupt(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range []string{SlotMain, SlotBackup} {
		if err := s.store.Delete(ctx, slot); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorage, err)
		}
	}
	s.game.Reset(ctx)
	s.recoveryPending = false
	s.lastSavedAt = time.Time{}

	logger.FromContext(ctx).Info(LogMsgCorruptSaveCleared)
	return nil
}

// RecoveryPending reports whether the last Load found unusable data
func (s *Service) RecoveryPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recoveryPending
}

// Status checks which slots hold data
func (s *Service) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{RecoveryPending: s.recoveryPending, LastSavedAt: s.lastSavedAt}
	for slot, found := range map[string]*bool{SlotMain: &st.HasSave, SlotBackup: &st.HasBackup} {
		_, err := s.read(ctx, slot)
		switch {
		case err == nil:
			*found = true
		case !errors.Is(err, storage.ErrSlotNotFound):
			return Status{}, err
		}
	}
	return st, nil
}

func (s *Service) read(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.store.Read(ctx, slot)
	if err != nil && !errors.Is(err, storage.ErrSlotNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return data, err
}

func (s *Service) writeBackup(ctx context.Context) error {
	data, err := Encode(s.game.Snapshot(), s.game.Now())
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, SlotBackup, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	logger.FromContext(ctx).Info(LogMsgBackupWritten, "bytes", len(data))
	return nil
}

// decoded is a save record turned into game state, not yet applied
type decoded struct {
	state   game.State
	savedAt time.Time
}

func (s *Service) decode(ctx context.Context, data []byte) (decoded, error) {
	rec, err := DecodeRecord(ctx, data, s.game.Catalog())
	if err != nil {
		return decoded{}, err
	}

	state := rec.State()
	now := s.game.Now()
	catchUp(state.Farm.Tiles, now, s.game.Catalog())
	catchUp(state.Orchard.Tiles, now, s.game.Catalog())

	d := decoded{state: state}
	if rec.SavedAt > 0 {
		d.savedAt = time.UnixMilli(rec.SavedAt).UTC()
	}
	return d, nil
}

// restore replaces the live game with d. Caller must hold the mutex.
func (s *Service) restore(ctx context.Context, d decoded) LoadReport {
	s.game.Restore(ctx, d.state)
	if !d.savedAt.IsZero() {
		s.lastSavedAt = d.savedAt
	}
	crops, trees := s.game.ReadyCounts()
	return LoadReport{SavedAt: d.savedAt, ReadyCrops: crops, ReadyTrees: trees}
}

func (s *Service) savedEvent(now time.Time) event.Event {
	crops, trees := s.game.ReadyCounts()
	return event.NewSaveEvent(event.GameSaved, domain.SaveEventPayload{
		Slot:       SlotMain,
		ReadyCrops: crops,
		ReadyTrees: trees,
	}, now)
}

func (s *Service) loadedEvent(report LoadReport) event.Event {
	return event.NewSaveEvent(event.GameLoaded, domain.SaveEventPayload{
		Slot:       SlotMain,
		ReadyCrops: report.ReadyCrops,
		ReadyTrees: report.ReadyTrees,
	}, s.game.Now())
}

// publish sends events in order. The service mutex must not be held.
func (s *Service) publish(ctx context.Context, events ...event.Event) {
	if s.bus == nil {
		return
	}
	for _, evt := range events {
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(game.LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
}
