package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/bonus"
	"casino-bot-backend/internal/config"
	"casino-bot-backend/internal/events"
	"casino-bot-backend/internal/games"
	"casino-bot-backend/internal/jackpot"
	"casino-bot-backend/internal/ledger"
	"casino-bot-backend/internal/limiter"
	"casino-bot-backend/internal/models"
	"casino-bot-backend/internal/store"
)

const actionPlay = "play"

// OutcomeResolver is the pure resolution dependency of a session. The
// production implementation is *games.Engine.
type OutcomeResolver interface {
	CanResolve(game models.GameType) bool
	Resolve(game models.GameType, wager int64) (*models.SettlementResult, error)
}

// GameSession orchestrates one wagered action end to end:
// validate -> rate check -> debit -> resolve -> credit win -> feed jackpot.
// Every step before the debit aborts with no economic side effect.
type GameSession struct {
	catalog     *games.Catalog
	engine      OutcomeResolver
	limiter     *limiter.RateLimiter
	ledger      *ledger.Ledger
	jackpot     *jackpot.Pool
	bonus       *bonus.Tracker
	store       *store.Store
	producer    *events.Producer
	broadcaster Broadcaster
	economy     config.EconomyConfig
	logger      zerolog.Logger
}

type Deps struct {
	Catalog     *games.Catalog
	Engine      OutcomeResolver
	Limiter     *limiter.RateLimiter
	Ledger      *ledger.Ledger
	Jackpot     *jackpot.Pool
	Bonus       *bonus.Tracker
	Store       *store.Store
	Producer    *events.Producer
	Broadcaster Broadcaster
	Economy     config.EconomyConfig
}

func NewGameSession(deps Deps, logger zerolog.Logger) *GameSession {
	return &GameSession{
		catalog:     deps.Catalog,
		engine:      deps.Engine,
		limiter:     deps.Limiter,
		ledger:      deps.Ledger,
		jackpot:     deps.Jackpot,
		bonus:       deps.Bonus,
		store:       deps.Store,
		producer:    deps.Producer,
		broadcaster: deps.Broadcaster,
		economy:     deps.Economy,
		logger:      logger.With().Str("component", "session").Logger(),
	}
}

// Play runs one wagered action to a terminal outcome. The action is not
// cancellable mid-flight: once the debit lands it always reaches a settled
// state before returning.
func (s *GameSession) Play(ctx context.Context, userID models.UserID, game models.GameType, wager int64) (*models.PlayResponse, error) {
	if err := s.catalog.ValidateWager(game, wager); err != nil {
		return nil, err
	}
	if !s.engine.CanResolve(game) {
		return nil, apperrors.Newf(apperrors.CodeUnknownGame, "game %q is not available yet", game)
	}

	if err := s.limiter.CheckAndConsume(ctx, userID, actionPlay,
		s.economy.PlayRateLimit, s.economy.PlayRateWindow); err != nil {
		return nil, err
	}

	balance, err := s.ledger.Debit(ctx, userID, wager)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Resolve(game, wager)
	if err != nil {
		// unreachable after the CanResolve gate; refund rather than strand
		// the debit
		if _, creditErr := s.ledger.Credit(ctx, userID, wager); creditErr != nil {
			s.logger.Error().Err(creditErr).
				Str("user_id", userID.String()).
				Int64("wager", wager).
				Msg("refund after resolve failure also failed")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "resolution failed")
	}

	var jackpotCut int64
	if result.Win && result.Payout > 0 {
		balance, err = s.ledger.Credit(ctx, userID, result.Payout)
		if err != nil {
			return nil, err
		}

		jackpotCut, err = s.jackpot.Contribute(ctx, result.Payout)
		if err != nil {
			// the user is already paid; the pool catches up next win
			s.logger.Error().Err(err).Int64("payout", result.Payout).Msg("jackpot contribution failed")
			err = nil
		}
	}

	settlementID := models.GenerateSettlementID()
	s.record(ctx, userID, game, wager, result, balance)
	s.publish(settlementID, userID, result, jackpotCut, balance)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastSettlement(userID, result)
		if jackpotCut > 0 {
			if total, peekErr := s.jackpot.Peek(ctx); peekErr == nil {
				s.broadcaster.BroadcastJackpot(total)
			}
		}
	}

	s.logger.Info().
		Str("settlement_id", settlementID).
		Str("user_id", userID.String()).
		Str("game", string(game)).
		Int64("wager", wager).
		Bool("win", result.Win).
		Int64("payout", result.Payout).
		Msg("settled")

	return &models.PlayResponse{
		SettlementID: settlementID,
		Result:       result,
		NewBalance:   balance,
	}, nil
}

// EnsureUser loads the profile, creating it on first sighting. A newly
// created user receives the configured starting balance, recorded as a grant.
func (s *GameSession) EnsureUser(ctx context.Context, userID models.UserID, platform models.Platform, username string) (*models.User, error) {
	user, created, err := s.store.LoadUser(ctx, userID, platform, username)
	if err != nil {
		return nil, err
	}

	if created && s.economy.StartingBalance > 0 {
		balance, err := s.ledger.Credit(ctx, userID, s.economy.StartingBalance)
		if err != nil {
			return nil, err
		}

		tx := &models.Transaction{
			ID:           models.GenerateTransactionID(),
			UserID:       userID,
			Type:         models.TransactionTypeBonus,
			Amount:       s.economy.StartingBalance,
			BalanceAfter: balance,
			Description:  "welcome grant",
			CreatedAt:    time.Now(),
		}
		if err := s.store.SaveTransaction(ctx, tx); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to record welcome grant")
		}
	}

	return user, nil
}

// ClaimDailyBonus grants the time-gated bonus through the tracker.
func (s *GameSession) ClaimDailyBonus(ctx context.Context, userID models.UserID) (*models.BonusResponse, error) {
	balance, err := s.bonus.Claim(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:           models.GenerateTransactionID(),
		UserID:       userID,
		Type:         models.TransactionTypeBonus,
		Amount:       s.bonus.Amount(),
		BalanceAfter: balance,
		Description:  "daily bonus",
		CreatedAt:    time.Now(),
	}
	if err := s.store.SaveTransaction(ctx, tx); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to record bonus transaction")
	}

	return &models.BonusResponse{
		Granted:    true,
		Amount:     s.bonus.Amount(),
		NewBalance: balance,
	}, nil
}

func (s *GameSession) Balance(ctx context.Context, userID models.UserID) (int64, error) {
	return s.ledger.GetBalance(ctx, userID)
}

func (s *GameSession) History(ctx context.Context, userID models.UserID, limit int64) ([]*models.Transaction, error) {
	return s.store.GetUserTransactions(ctx, userID, limit)
}

func (s *GameSession) Catalog() []models.GameDefinition {
	return s.catalog.List()
}

func (s *GameSession) JackpotPeek(ctx context.Context) (int64, error) {
	return s.jackpot.Peek(ctx)
}

func (s *GameSession) JackpotDrain(ctx context.Context) (int64, error) {
	return s.jackpot.Drain(ctx)
}

// record keeps the bet and win movements in the transaction history.
// Bookkeeping only, never fails the settlement.
func (s *GameSession) record(ctx context.Context, userID models.UserID, game models.GameType, wager int64, result *models.SettlementResult, balance int64) {
	betTx := &models.Transaction{
		ID:           models.GenerateTransactionID(),
		UserID:       userID,
		Type:         models.TransactionTypeBet,
		Game:         game,
		Amount:       wager,
		BalanceAfter: balance,
		Description:  fmt.Sprintf("bet %d on %s", wager, game),
		CreatedAt:    time.Now(),
	}
	if result.Win {
		betTx.BalanceAfter = balance - result.Payout
	}
	if err := s.store.SaveTransaction(ctx, betTx); err != nil {
		s.logger.Error().Err(err).Msg("failed to record bet transaction")
	}

	if result.Win {
		winTx := &models.Transaction{
			ID:           models.GenerateTransactionID(),
			UserID:       userID,
			Type:         models.TransactionTypeWin,
			Game:         game,
			Amount:       result.Payout,
			BalanceAfter: balance,
			Description:  fmt.Sprintf("won %d on %s (x%s)", result.Payout, game, result.Multiplier),
			CreatedAt:    time.Now(),
		}
		if err := s.store.SaveTransaction(ctx, winTx); err != nil {
			s.logger.Error().Err(err).Msg("failed to record win transaction")
		}
	}
}

func (s *GameSession) publish(settlementID string, userID models.UserID, result *models.SettlementResult, jackpotCut, balance int64) {
	s.producer.PublishSettlement(&events.SettlementEvent{
		SettlementID: settlementID,
		UserID:       userID.String(),
		Game:         string(result.Game),
		Wager:        result.Wager,
		Win:          result.Win,
		Multiplier:   result.Multiplier.String(),
		Payout:       result.Payout,
		JackpotCut:   jackpotCut,
		NewBalance:   balance,
		SettledAt:    time.Now(),
	})
}
