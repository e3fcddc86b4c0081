package services

import (
	"context"
	"html"
	"log"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/nada/admin/internal/models"
)

const (
	anonymousNickname = "anonymous"
	emptyMessage      = "(empty message)"
)

// ContactService handles messages sent through the public contact form.
type ContactService struct {
	store  ContactStore
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewContactService(store ContactStore) *ContactService {
	return &ContactService{store: store, policy: bluemonday.StrictPolicy(), now: time.Now}
}

// List returns open messages, or every message when includeResolved is set.
// Text is stripped of markup before it reaches the console.
func (s *ContactService) List(ctx context.Context, includeResolved bool) ([]models.ContactMessage, error) {
	msgs, err := s.store.ListMessages(ctx, includeResolved)
	if err != nil {
		return nil, err
	}
	for i := range msgs {
		m := &msgs[i]
		m.Nickname = s.clean(m.Nickname)
		m.Email = s.clean(m.Email)
		m.Message = s.clean(m.Message)
		if m.Nickname == "" {
			m.Nickname = anonymousNickname
		}
		if m.Message == "" {
			m.Message = emptyMessage
		}
	}
	return msgs, nil
}

func (s *ContactService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *ContactService) Resolve(ctx context.Context, id, adminID string) error {
	ok, err := s.store.ResolveMessage(ctx, id, adminID, s.now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return ErrContactNotFound
	}
	log.Printf("[contact] resolve id=%s by=%s", id, adminID)
	return nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	ok, err := s.store.DeleteMessage(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrContactNotFound
	}
	log.Printf("[contact] delete id=%s", id)
	return nil
}
