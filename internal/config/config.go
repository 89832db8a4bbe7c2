package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"casino-bot-backend/internal/logging"
	"casino-bot-backend/internal/models"
)

// Config holds all application configuration. Loaded once at startup and
// treated as immutable for the process lifetime.
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	JWT         JWTConfig      `mapstructure:"jwt"`
	Logging     logging.Config `mapstructure:"logging"`
	Economy     EconomyConfig  `mapstructure:"economy"`

	Games []models.GameDefinition `mapstructure:"games"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers"`
	SettlementTopic string   `mapstructure:"settlement_topic"`
}

type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	Expiration  time.Duration `mapstructure:"expiration"`
	FrontendKey string        `mapstructure:"frontend_key"`
}

// EconomyConfig holds the money-like tunables.
type EconomyConfig struct {
	StartingBalance         int64         `mapstructure:"starting_balance"`
	DailyBonusAmount        int64         `mapstructure:"daily_bonus_amount"`
	JackpotContributionRate float64       `mapstructure:"jackpot_contribution_rate"`
	PlayRateLimit           int           `mapstructure:"play_rate_limit"`
	PlayRateWindow          time.Duration `mapstructure:"play_rate_window"`
}

// Load reads a YAML config file with environment variable overrides.
func Load(filename string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(filename)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Default returns a config usable without any file, for local runs and tests.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Kafka.SettlementTopic == "" {
		c.Kafka.SettlementTopic = "casino.settlements"
	}
	if c.JWT.Expiration == 0 {
		c.JWT.Expiration = 24 * time.Hour
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Economy.DailyBonusAmount == 0 {
		c.Economy.DailyBonusAmount = 100
	}
	if c.Economy.JackpotContributionRate == 0 {
		c.Economy.JackpotContributionRate = 0.01
	}
	if c.Economy.PlayRateLimit == 0 {
		c.Economy.PlayRateLimit = 30
	}
	if c.Economy.PlayRateWindow == 0 {
		c.Economy.PlayRateWindow = time.Minute
	}
	if len(c.Games) == 0 {
		c.Games = DefaultGameCatalog()
	}
}

// DefaultGameCatalog is the built-in catalog with per-game bet bounds and
// nominal house edges.
func DefaultGameCatalog() []models.GameDefinition {
	return []models.GameDefinition{
		{
			Type:        models.GameTypeSlots,
			Name:        "Slot Machine",
			MinBet:      10,
			MaxBet:      1000,
			HouseEdge:   0.05,
			Description: "Spin the reels and win multipliers!",
		},
		{
			Type:        models.GameTypeBlackjack,
			Name:        "Blackjack",
			MinBet:      50,
			MaxBet:      5000,
			HouseEdge:   0.005,
			Description: "Beat the dealer to 21!",
		},
		{
			Type:        models.GameTypeRoulette,
			Name:        "Roulette",
			MinBet:      25,
			MaxBet:      2500,
			HouseEdge:   0.0263,
			Description: "Bet on numbers, colors or combinations",
		},
		{
			Type:        models.GameTypeDice,
			Name:        "Dice Duel",
			MinBet:      5,
			MaxBet:      500,
			HouseEdge:   0.01,
			Description: "Roll the dice against the house!",
		},
		{
			Type:        models.GameTypeCrash,
			Name:        "Crash Game",
			MinBet:      10,
			MaxBet:      2000,
			HouseEdge:   0.03,
			Description: "Cash out before the multiplier crashes!",
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
