package services

import (
	"testing"
	"time"

	"github.com/nada/admin/internal/models"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func rec(id, from, to string, amount int64, at time.Time) models.TransactionRecord {
	return models.TransactionRecord{ID: id, FromUserID: from, ToUserID: to, Amount: amount, Timestamp: at}
}

func TestReconstructLedgerChargeThenDeduct(t *testing.T) {
	records := []models.TransactionRecord{
		rec("b", models.AdminSenderID, "u1", -20, t0.Add(2*time.Minute)),
		rec("a", models.AdminSenderID, "u1", 50, t0.Add(time.Minute)),
	}

	got := ReconstructLedger("u1", 100, records)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != "b" || got[0].BalanceAfter != 100 {
		t.Errorf("newest entry = %s/%d, want b/100", got[0].ID, got[0].BalanceAfter)
	}
	if got[1].ID != "a" || got[1].BalanceAfter != 120 {
		t.Errorf("oldest entry = %s/%d, want a/120", got[1].ID, got[1].BalanceAfter)
	}
	opening := got[1].BalanceAfter - ledgerDelta("u1", got[1].TransactionRecord)
	if opening != 70 {
		t.Errorf("opening balance = %d, want 70", opening)
	}
}

func TestReconstructLedgerSenderSide(t *testing.T) {
	records := []models.TransactionRecord{
		rec("gift", "u1", "u2", 30, t0),
	}
	got := ReconstructLedger("u1", 10, records)
	if got[0].BalanceAfter != 10 {
		t.Fatalf("balance after = %d, want 10", got[0].BalanceAfter)
	}
	if d := ledgerDelta("u1", records[0]); d != -30 {
		t.Errorf("sender delta = %d, want -30", d)
	}
	if d := ledgerDelta("u2", records[0]); d != 30 {
		t.Errorf("receiver delta = %d, want 30", d)
	}
	if d := ledgerDelta("u3", records[0]); d != 0 {
		t.Errorf("unrelated delta = %d, want 0", d)
	}
	if d := ledgerDelta("u1", rec("self", "u1", "u1", 5, t0)); d != 0 {
		t.Errorf("self transfer delta = %d, want 0", d)
	}
}

func TestReconstructLedgerForwardReplay(t *testing.T) {
	records := []models.TransactionRecord{
		rec("1", models.AdminSenderID, "u1", 500, t0),
		rec("2", "u1", "artist", 120, t0.Add(time.Hour)),
		rec("3", "fan", "u1", 40, t0.Add(2*time.Hour)),
		rec("4", models.AdminSenderID, "u1", -200, t0.Add(3*time.Hour)),
		rec("5", "u1", "artist", 15, t0.Add(4*time.Hour)),
	}
	const current = 1000

	got := ReconstructLedger("u1", current, records)
	if got[0].BalanceAfter != current {
		t.Fatalf("newest balance = %d, want %d", got[0].BalanceAfter, current)
	}

	// Replaying forward from the opening balance must land on every
	// recorded balance.
	oldest := got[len(got)-1]
	running := oldest.BalanceAfter - ledgerDelta("u1", oldest.TransactionRecord)
	for i := len(got) - 1; i >= 0; i-- {
		running += ledgerDelta("u1", got[i].TransactionRecord)
		if running != got[i].BalanceAfter {
			t.Fatalf("entry %s: replayed %d, recorded %d", got[i].ID, running, got[i].BalanceAfter)
		}
	}
}

func TestReconstructLedgerIsDeterministic(t *testing.T) {
	records := []models.TransactionRecord{
		rec("c", models.AdminSenderID, "u1", 5, t0),
		rec("a", models.AdminSenderID, "u1", 7, t0),
		rec("b", "u1", "x", 3, t0),
	}
	first := ReconstructLedger("u1", 50, records)

	reversed := []models.TransactionRecord{records[2], records[1], records[0]}
	second := ReconstructLedger("u1", 50, reversed)

	for i := range first {
		if first[i].ID != second[i].ID || first[i].BalanceAfter != second[i].BalanceAfter {
			t.Fatalf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	// Equal timestamps order by id, newest first means c, b, a.
	if first[0].ID != "c" || first[1].ID != "b" || first[2].ID != "a" {
		t.Errorf("tie order = %s,%s,%s, want c,b,a", first[0].ID, first[1].ID, first[2].ID)
	}
	if records[0].ID != "c" {
		t.Error("input slice was reordered")
	}
}

func TestReconstructLedgerEmpty(t *testing.T) {
	got := ReconstructLedger("u1", 42, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestDedupeTransactions(t *testing.T) {
	in := []models.TransactionRecord{
		rec("a", "x", "u1", 1, t0),
		rec("b", "u1", "y", 2, t0),
		rec("a", "x", "u1", 1, t0),
	}
	got := dedupeTransactions(in)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected dedupe result: %+v", got)
	}
}
