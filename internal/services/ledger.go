package services

import (
	"sort"

	"github.com/nada/admin/internal/models"
)

// ledgerDelta is the change rec made to userID's balance.
func ledgerDelta(userID string, rec models.TransactionRecord) int64 {
	var d int64
	if rec.ToUserID == userID {
		d += rec.Amount
	}
	if rec.FromUserID == userID {
		d -= rec.Amount
	}
	return d
}

// ReconstructLedger annotates records with userID's balance right after each
// one, replaying backward from currentBalance. Records are ordered by
// timestamp then id; the result is newest first.
func ReconstructLedger(userID string, currentBalance int64, records []models.TransactionRecord) []models.LedgerEntry {
	out := make([]models.LedgerEntry, 0, len(records))
	if len(records) == 0 {
		return out
	}

	sorted := make([]models.TransactionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID < sorted[j].ID
	})

	running := currentBalance
	for i := len(sorted) - 1; i >= 0; i-- {
		out = append(out, models.LedgerEntry{TransactionRecord: sorted[i], BalanceAfter: running})
		running -= ledgerDelta(userID, sorted[i])
	}
	return out
}

// dedupeTransactions drops repeated ids, keeping the first occurrence.
func dedupeTransactions(records []models.TransactionRecord) []models.TransactionRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.TransactionRecord, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
