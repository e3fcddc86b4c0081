package services

import (
	"errors"
	"testing"
)

func TestAsyncNotifierDelivers(t *testing.T) {
	store := &fakeNotificationStore{}
	n := NewAsyncNotifier(store)

	n.Notify("u1", "hello")
	n.Notify("", "dropped")
	n.Wait()

	if len(store.notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(store.notes))
	}
	got := store.notes[0]
	if got.UserID != "u1" || got.Message != "hello" || got.ID == "" || got.CreatedAt.IsZero() {
		t.Errorf("notification = %+v", got)
	}
}

func TestAsyncNotifierSwallowsErrors(t *testing.T) {
	store := &fakeNotificationStore{err: errors.New("write failed")}
	n := NewAsyncNotifier(store)
	n.Notify("u1", "hello")
	n.Wait()
	if len(store.notes) != 0 {
		t.Error("failed writes should not be stored")
	}
}
