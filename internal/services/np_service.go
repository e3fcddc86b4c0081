package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nada/admin/internal/models"
)

const (
	contextAdminCharge = "admin charge"
	contextAdminDeduct = "admin deduct"
)

// NPService manages the NP balance of users and their transaction history.
type NPService struct {
	users UserStore
	txs   TransactionStore
	tx    TxRunner
	now   func() time.Time
}

func NewNPService(users UserStore, txs TransactionStore, tx TxRunner) *NPService {
	return &NPService{users: users, txs: txs, tx: tx, now: time.Now}
}

func (s *NPService) FindUserByNickname(ctx context.Context, nickname string) (*models.UserAccount, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, ErrUserNotFound
	}
	return s.users.FindByNickname(ctx, nickname)
}

// Ledger returns the user's transactions with the balance after each one.
func (s *NPService) Ledger(ctx context.Context, userID string) (*models.LedgerResponse, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.txs.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return &models.LedgerResponse{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Balance:  user.NP,
		Entries:  ReconstructLedger(user.ID, user.NP, dedupeTransactions(records)),
	}, nil
}

func (s *NPService) Charge(ctx context.Context, userID string, amount int64, adminID string) (*models.NPAdjustResponse, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.adjust(ctx, userID, amount, contextAdminCharge, adminID)
}

// Deduct removes up to amount; the balance never goes below zero and the
// recorded transaction carries the amount actually removed.
func (s *NPService) Deduct(ctx context.Context, userID string, amount int64, adminID string) (*models.NPAdjustResponse, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.adjust(ctx, userID, -amount, contextAdminDeduct, adminID)
}

func (s *NPService) adjust(ctx context.Context, userID string, delta int64, reason, adminID string) (*models.NPAdjustResponse, error) {
	var out models.NPAdjustResponse
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		before, after, err := s.users.AdjustNP(ctx, userID, delta)
		if err != nil {
			return err
		}
		applied := after - before
		if applied == 0 {
			return ErrInsufficientNP
		}
		rec := models.TransactionRecord{
			ID:         uuid.New().String(),
			FromUserID: models.AdminSenderID,
			ToUserID:   userID,
			Amount:     applied,
			Context:    reason,
			Timestamp:  s.now().UTC(),
		}
		if err := s.txs.InsertTransaction(ctx, rec); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		out = models.NPAdjustResponse{Balance: after, Transaction: rec}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[np] %s user=%s amount=%d balance=%d admin=%s", reason, userID, out.Transaction.Amount, out.Balance, adminID)
	return &out, nil
}
