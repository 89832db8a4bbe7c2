package games

import (
	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/models"
)

// Catalog holds the static game definitions loaded at startup.
type Catalog struct {
	games map[models.GameType]models.GameDefinition
	order []models.GameType
}

func NewCatalog(defs []models.GameDefinition) *Catalog {
	c := &Catalog{games: make(map[models.GameType]models.GameDefinition, len(defs))}
	for _, def := range defs {
		if _, seen := c.games[def.Type]; seen {
			continue
		}
		c.games[def.Type] = def
		c.order = append(c.order, def.Type)
	}
	return c
}

func (c *Catalog) Get(game models.GameType) (models.GameDefinition, bool) {
	def, ok := c.games[game]
	return def, ok
}

// List returns the definitions in configuration order.
func (c *Catalog) List() []models.GameDefinition {
	defs := make([]models.GameDefinition, 0, len(c.order))
	for _, t := range c.order {
		defs = append(defs, c.games[t])
	}
	return defs
}

// ValidateWager rejects unknown games and out-of-bounds wagers before any
// side effect, reporting the violated bound.
func (c *Catalog) ValidateWager(game models.GameType, wager int64) error {
	def, ok := c.games[game]
	if !ok {
		return apperrors.Newf(apperrors.CodeUnknownGame, "unknown game %q", game)
	}
	if wager < def.MinBet {
		return apperrors.Newf(apperrors.CodeInvalidWager,
			"minimum bet for %s is %d credits", game, def.MinBet)
	}
	if wager > def.MaxBet {
		return apperrors.Newf(apperrors.CodeInvalidWager,
			"maximum bet for %s is %d credits", game, def.MaxBet)
	}
	return nil
}
