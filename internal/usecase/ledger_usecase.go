package usecase

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/paymint/paymint/internal/domain"
)

// LedgerUseCase handles transaction history reads.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
	cache      Cache
}

// NewLedgerUseCase creates a new LedgerUseCase. cache may be nil.
func NewLedgerUseCase(ledgerRepo LedgerRepository, cache Cache) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// GetTransaction retrieves a transaction by ID.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.ledgerRepo.GetByID(ctx, id)
}

// History returns every transaction where the account is sender or
// receiver, most recent first, each annotated with its direction relative
// to the account.
func (uc *LedgerUseCase) History(ctx context.Context, accountID string) ([]domain.HistoryEntry, error) {
	if cached, ok := uc.cachedHistory(ctx, accountID); ok {
		return annotate(cached, accountID), nil
	}

	txns, err := uc.ledgerRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	uc.storeHistory(ctx, accountID, txns)

	return annotate(txns, accountID), nil
}

func annotate(txns []*domain.Transaction, accountID string) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, len(txns))
	for i, txn := range txns {
		entries[i] = domain.HistoryEntry{
			Transaction: txn,
			Direction:   txn.DirectionFor(accountID),
		}
	}

	return entries
}

func (uc *LedgerUseCase) cachedHistory(ctx context.Context, accountID string) ([]*domain.Transaction, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, historyCacheKey(accountID))
	if err != nil {
		return nil, false
	}

	var txns []*domain.Transaction
	if err := json.Unmarshal(raw, &txns); err != nil {
		log.Warn().Err(err).Str("account_id", accountID).Msg("discarding corrupt history cache entry")
		return nil, false
	}

	return txns, true
}

func (uc *LedgerUseCase) storeHistory(ctx context.Context, accountID string, txns []*domain.Transaction) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(txns)
	if err != nil {
		return
	}

	// Cache errors never fail a read.
	if err := uc.cache.Set(ctx, historyCacheKey(accountID), raw, historyCacheTTL); err != nil {
		log.Warn().Err(err).Str("account_id", accountID).Msg("failed to cache history")
	}
}

func historyCacheKey(accountID string) string {
	return "history:" + accountID
}

// invalidateHistory drops cached histories for the given accounts.
func invalidateHistory(ctx context.Context, cache Cache, accountIDs ...string) {
	if cache == nil {
		return
	}

	for _, id := range accountIDs {
		if err := cache.Delete(ctx, historyCacheKey(id)); err != nil {
			log.Warn().Err(err).Str("account_id", id).Msg("failed to invalidate history cache")
		}
	}
}
