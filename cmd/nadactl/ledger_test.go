package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nada/admin/internal/models"
)

func TestPrintLedger(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := &models.LedgerResponse{
		UserID:   "u1",
		Nickname: "mina",
		Balance:  70,
		Entries: []models.LedgerEntry{{
			TransactionRecord: models.TransactionRecord{ID: "t1", FromUserID: "ADMIN", ToUserID: "u1", Amount: 70, Context: "admin charge", Timestamp: at},
			BalanceAfter:      70,
		}},
	}

	var buf bytes.Buffer
	if err := printLedger(&buf, ledger); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"mina (u1) balance=70", "TIME", "2024-03-01T12:00:00Z", "admin charge"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
