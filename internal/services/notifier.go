package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nada/admin/internal/models"
)

// AsyncNotifier writes in-app notifications in the background. Delivery
// failures are logged and never reach the caller.
type AsyncNotifier struct {
	store   NotificationStore
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsyncNotifier(store NotificationStore) *AsyncNotifier {
	return &AsyncNotifier{store: store, timeout: 10 * time.Second}
}

func (n *AsyncNotifier) Notify(userID, message string) {
	if strings.TrimSpace(userID) == "" || n.store == nil {
		return
	}
	note := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.store.InsertNotification(ctx, note); err != nil {
			log.Printf("[notify] user=%s failed: %v", userID, err)
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}
