package usecase

import "time"

const (
	// StartingBalance is credited to every account on first sign-in.
	StartingBalance = 1000

	// maxAccountNumberAttempts bounds collision retries when generating a
	// fresh account number.
	maxAccountNumberAttempts = 10

	// DefaultEvaluatorTimeout bounds the external fraud evaluation call.
	DefaultEvaluatorTimeout = 30 * time.Second

	// historyCacheTTL is how long a rendered history stays cached.
	historyCacheTTL = 5 * time.Minute
)
