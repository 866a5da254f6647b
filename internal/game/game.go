// Package game is the aggregate that owns the wallet, both grids and player
// progression, and exposes every player action as a single operation.
package game

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/progression"
)

// Publisher receives events produced by game actions
type Publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

type progressKey struct {
	grid  domain.GridKind
	index int
}

// Game holds one player's farm. All methods are safe for concurrent use;
// events are published after the state lock is released so handlers may
// call back into the game.
type Game struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	bus     Publisher
	now     func() time.Time

	wallet          Wallet
	farm            *farm.Grid
	orchard         *farm.Grid
	orchardUnlocked bool
	saplings        map[string]bool
	selectedCrop    string
	selectedTree    string
	player          progression.Player

	progress *expirable.LRU[progressKey, float64]
}

// Option configures a Game
type Option func(*Game)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithPublisher routes game events to p
func WithPublisher(p Publisher) Option {
	return func(g *Game) { g.bus = p }
}

// New creates a fresh game over the given catalog
func New(cat *catalog.Catalog, opts ...Option) *Game {
	g := &Game{
		catalog:  cat,
		now:      time.Now,
		farm:     farm.NewFarmGrid(cat),
		orchard:  farm.NewOrchardGrid(cat),
		progress: expirable.NewLRU[progressKey, float64](ProgressCacheSize, nil, ProgressCacheTTL),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.resetLocked()
	return g
}

// Catalog returns the species tables the game was built with
func (g *Game) Catalog() *catalog.Catalog {
	return g.catalog
}

// Now returns the game clock's current time
func (g *Game) Now() time.Time {
	return g.now()
}

func (g *Game) resetLocked() {
	g.wallet = Wallet{}
	g.farm.Reset()
	g.orchard.Reset()
	g.orchardUnlocked = false
	g.saplings = defaultSaplings(g.catalog)
	g.selectedCrop = catalog.DefaultCropID
	g.selectedTree = catalog.DefaultTreeID
	g.player = progression.NewPlayer()
	g.progress.Purge()
}

func defaultSaplings(cat *catalog.Catalog) map[string]bool {
	saplings := make(map[string]bool)
	for _, tree := range cat.Trees() {
		saplings[tree.ID] = false
	}
	return saplings
}

func (g *Game) grid(kind domain.GridKind) (*farm.Grid, error) {
	switch kind {
	case domain.GridFarm:
		return g.farm, nil
	case domain.GridOrchard:
		if !g.orchardUnlocked {
			return nil, domain.ErrOrchardLocked
		}
		return g.orchard, nil
	}
	return nil, domain.ErrInvalidGrid
}

// publish delivers events outside the lock. Listener failures never reach the caller.
func (g *Game) publish(ctx context.Context, events []event.Event) {
	if g.bus == nil {
		return
	}
	for _, evt := range events {
		if err := g.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
}
