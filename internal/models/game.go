package models

type GameType string

const (
	GameTypeSlots     GameType = "slots"
	GameTypeBlackjack GameType = "blackjack"
	GameTypeRoulette  GameType = "roulette"
	GameTypeDice      GameType = "dice"
	GameTypeCrash     GameType = "crash"
)

// GameDefinition is the static per-game configuration loaded once at
// startup. HouseEdge is documentation only: the realized edge comes out of
// the outcome tables, it is not separately enforced.
type GameDefinition struct {
	Type        GameType `json:"type" mapstructure:"type"`
	Name        string   `json:"name" mapstructure:"name"`
	MinBet      int64    `json:"min_bet" mapstructure:"min_bet"`
	MaxBet      int64    `json:"max_bet" mapstructure:"max_bet"`
	HouseEdge   float64  `json:"house_edge" mapstructure:"house_edge"`
	Description string   `json:"description" mapstructure:"description"`
}
