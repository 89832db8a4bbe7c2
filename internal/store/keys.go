package store

import "time"

const (
	KeyUserProfile      = "user:%s:profile"
	KeyUserCredits      = "user:%s:credits"
	KeyUserTransactions = "user:%s:transactions"
	KeyTransaction      = "transaction:%s"
	KeyRateLimit        = "ratelimit:%s:%s"
	KeyDailyBonus       = "daily_bonus:%s"
	KeyJackpotPool      = "jackpot:pool"

	TTLTransaction = 30 * 24 * time.Hour
)
