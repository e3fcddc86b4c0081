package models

import "time"

// AdminSenderID is the sender recorded on balance changes made from the console.
const AdminSenderID = "ADMIN"

// TransactionRecord is one immutable NP movement. Amount is signed: positive
// credits the receiver.
type TransactionRecord struct {
	ID         string    `json:"id" bson:"_id"`
	FromUserID string    `json:"from_user_id" bson:"from_user_id"`
	ToUserID   string    `json:"to_user_id" bson:"to_user_id"`
	Amount     int64     `json:"amount" bson:"amount"`
	Context    string    `json:"context" bson:"context"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// LedgerEntry is a transaction annotated with the subject's balance right
// after it was applied.
type LedgerEntry struct {
	TransactionRecord
	BalanceAfter int64 `json:"balance_after"`
}

type LedgerResponse struct {
	UserID   string        `json:"user_id"`
	Nickname string        `json:"nickname"`
	Balance  int64         `json:"balance"`
	Entries  []LedgerEntry `json:"entries"`
}

type NPAdjustRequest struct {
	Amount int64 `json:"amount"`
}

type NPAdjustResponse struct {
	Balance     int64             `json:"balance"`
	Transaction TransactionRecord `json:"transaction"`
}
