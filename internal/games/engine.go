// Package games contains the catalog and the pure outcome resolvers. A
// resolver maps a wager to a settlement result and never errors: all
// failure cases are screened out before any money moves.
package games

import (
	"math/rand"
	"sync"
	"time"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/models"
)

// Resolver turns a validated wager into a settlement result. Resolvers
// must be total for all wagers within the game's bounds.
type Resolver func(e *Engine, wager int64) *models.SettlementResult

// Engine draws outcomes from a single process-wide random source. The
// source is guarded because settlements resolve concurrently.
type Engine struct {
	mu        sync.Mutex
	rng       *rand.Rand
	resolvers map[models.GameType]Resolver
}

func NewEngine() *Engine {
	return NewEngineWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewEngineWithSource takes an explicit source so tests can fix the seed.
func NewEngineWithSource(src rand.Source) *Engine {
	e := &Engine{rng: rand.New(src)}
	e.resolvers = map[models.GameType]Resolver{
		models.GameTypeSlots: resolveSlots,
		models.GameTypeDice:  resolveDice,
		models.GameTypeCrash: resolveCrash,
		// blackjack and roulette are declared in the catalog but have no
		// resolver yet; Register is the extension point.
	}
	return e
}

// Register installs a resolver for a game, replacing any existing one.
func (e *Engine) Register(game models.GameType, r Resolver) {
	e.resolvers[game] = r
}

// CanResolve reports whether a resolver exists. The orchestrator checks
// this before debiting so Resolve can never fail after money has moved.
func (e *Engine) CanResolve(game models.GameType) bool {
	_, ok := e.resolvers[game]
	return ok
}

// Resolve settles a wager. Errors only for games without a resolver.
func (e *Engine) Resolve(game models.GameType, wager int64) (*models.SettlementResult, error) {
	resolver, ok := e.resolvers[game]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeUnknownGame, "no resolver for game %q", game)
	}
	return resolver(e, wager), nil
}

func (e *Engine) float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

// intn returns a uniform int in [0, n).
func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}
