// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/models"
)

const (
	collectionAccounts = "accounts"
	collectionChats    = "chats"
	collectionMessages = "messages"
)

// syncCoordinator keeps the inbox cache. Network calls are made without
// holding mu; results are applied under mu after the staleness checks.
//
// epoch is bumped by Reset so that pulls started for a previous session are
// never applied to the next one.
type syncCoordinator struct {
	gateway       adapter.Gateway
	messagesLimit int

	metrics *metrics.Metrics
	logger  *logger.Logger

	mu             sync.Mutex
	epoch          uint64
	accounts       []models.Account
	chats          []models.Chat
	selected       *models.Chat
	messages       []models.Message
	listener       func(models.InboxView)
	onUnauthorized func()
}

// NewSyncCoordinator creates an empty coordinator. A non-positive
// messagesLimit uses adapter.DefaultMessagesLimit. m may be nil.
func NewSyncCoordinator(gateway adapter.Gateway, messagesLimit int, m *metrics.Metrics, log *logger.Logger) SyncCoordinator {
	if messagesLimit <= 0 {
		messagesLimit = adapter.DefaultMessagesLimit
	}
	return &syncCoordinator{
		gateway:       gateway,
		messagesLimit: messagesLimit,
		metrics:       m,
		logger:        log,
		accounts:      []models.Account{},
		chats:         []models.Chat{},
		messages:      []models.Message{},
	}
}

func (s *syncCoordinator) RefreshAccounts(ctx context.Context) error {
	return s.refreshAccounts(ctx, metrics.TriggerUser)
}

func (s *syncCoordinator) RefreshChats(ctx context.Context) error {
	return s.refreshChats(ctx, metrics.TriggerUser)
}

func (s *syncCoordinator) SelectChat(ctx context.Context, chat models.Chat) error {
	s.mu.Lock()
	if s.selected == nil || s.selected.Key() != chat.Key() {
		s.messages = []models.Message{}
	}
	selected := chat
	s.selected = &selected
	notify := s.changedLocked()
	s.mu.Unlock()

	notify()

	return s.refreshMessages(ctx, chat.ChatID, metrics.TriggerUser)
}

func (s *syncCoordinator) RefreshMessages(ctx context.Context, chatID models.ID) error {
	return s.refreshMessages(ctx, chatID, metrics.TriggerUser)
}

func (s *syncCoordinator) HandlePushEvent(ctx context.Context, event models.PushEvent) {
	if event.Type != models.PushEventMessageNew {
		s.logger.Debug().Str("type", string(event.Type)).Msg("ignoring push event")
		return
	}

	s.mu.Lock()
	selected := s.selected != nil && event.ChatID != "" && s.selected.ChatID == event.ChatID
	s.mu.Unlock()

	if selected {
		_ = s.refreshMessages(ctx, event.ChatID, metrics.TriggerPush)
	}
	_ = s.refreshChats(ctx, metrics.TriggerPush)
}

func (s *syncCoordinator) SendMessage(ctx context.Context, platform models.Platform, accountID, chatID, text string) (models.ID, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}
	if !platform.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, platform)
	}

	resp, err := s.gateway.SendMessage(ctx, models.SendMessageRequest{
		Platform:  platform,
		AccountID: accountID,
		ChatID:    chatID,
		Text:      text,
	})
	if err != nil {
		s.unauthorized(err)
		return "", fmt.Errorf("send message: %w", err)
	}

	// the message is delivered; a failed refresh is only diagnosed
	_ = s.refreshMessages(ctx, models.ID(chatID), metrics.TriggerUser)

	return resp.MessageID, nil
}

func (s *syncCoordinator) DisconnectAccount(ctx context.Context, accountID models.ID) error {
	if err := s.gateway.DisconnectAccount(ctx, accountID); err != nil {
		s.unauthorized(err)
		return fmt.Errorf("disconnect account %s: %w", accountID, err)
	}

	_ = s.refreshAccounts(ctx, metrics.TriggerUser)
	_ = s.refreshChats(ctx, metrics.TriggerUser)
	return nil
}

func (s *syncCoordinator) AccountsLinked(ctx context.Context) {
	_ = s.refreshAccounts(ctx, metrics.TriggerLinking)
	_ = s.refreshChats(ctx, metrics.TriggerLinking)
}

func (s *syncCoordinator) BackgroundRefresh(ctx context.Context, trigger string) {
	_ = s.refreshChats(ctx, trigger)

	s.mu.Lock()
	var chatID models.ID
	if s.selected != nil {
		chatID = s.selected.ChatID
	}
	s.mu.Unlock()

	if chatID != "" {
		_ = s.refreshMessages(ctx, chatID, trigger)
	}
}

func (s *syncCoordinator) Snapshot() models.InboxView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *syncCoordinator) OnChange(listener func(models.InboxView)) {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
}

func (s *syncCoordinator) OnUnauthorized(hook func()) {
	s.mu.Lock()
	s.onUnauthorized = hook
	s.mu.Unlock()
}

func (s *syncCoordinator) Reset() {
	s.mu.Lock()
	s.epoch++
	s.accounts = []models.Account{}
	s.chats = []models.Chat{}
	s.messages = []models.Message{}
	s.selected = nil
	notify := s.changedLocked()
	s.mu.Unlock()

	notify()
}

func (s *syncCoordinator) refreshAccounts(ctx context.Context, trigger string) error {
	epoch := s.currentEpoch()

	start := time.Now()
	accounts, err := s.gateway.ListAccounts(ctx)
	if err != nil {
		return s.failed(collectionAccounts, trigger, err)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil
	}
	s.accounts = accounts
	notify := s.changedLocked()
	s.mu.Unlock()

	notify()
	s.logger.Debug().Str("trigger", trigger).Int("count", len(accounts)).Dur("took", time.Since(start)).Msg("accounts refreshed")
	return nil
}

func (s *syncCoordinator) refreshChats(ctx context.Context, trigger string) error {
	epoch := s.currentEpoch()

	start := time.Now()
	chats, err := s.gateway.ListChats(ctx)
	if err != nil {
		return s.failed(collectionChats, trigger, err)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil
	}
	s.chats = chats
	notify := s.changedLocked()
	s.mu.Unlock()

	notify()
	s.logger.Debug().Str("trigger", trigger).Int("count", len(chats)).Dur("took", time.Since(start)).Msg("chats refreshed")
	return nil
}

func (s *syncCoordinator) refreshMessages(ctx context.Context, chatID models.ID, trigger string) error {
	epoch := s.currentEpoch()

	messages, err := s.gateway.ListMessages(ctx, chatID, s.messagesLimit)
	if err != nil {
		return s.failed(collectionMessages, trigger, err)
	}

	s.mu.Lock()
	if epoch != s.epoch || s.selected == nil || s.selected.ChatID != chatID {
		s.mu.Unlock()
		s.metrics.IncStaleDiscard()
		s.logger.Debug().Str("chat_id", chatID.String()).Msg("discarding messages of a chat no longer selected")
		return nil
	}
	s.messages = messages
	notify := s.changedLocked()
	s.mu.Unlock()

	notify()
	return nil
}

// failed diagnoses a pull failure and returns it to the caller. The cached
// collection is left untouched.
func (s *syncCoordinator) failed(collection, trigger string, err error) error {
	s.metrics.IncRefreshFailure(collection, trigger)
	s.logger.Warn().Err(err).Str("collection", collection).Str("trigger", trigger).Msg("refresh failed")
	s.unauthorized(err)
	return fmt.Errorf("refresh %s: %w", collection, err)
}

func (s *syncCoordinator) unauthorized(err error) {
	if !adapter.IsUnauthorized(err) {
		return
	}
	s.mu.Lock()
	hook := s.onUnauthorized
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (s *syncCoordinator) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// changedLocked returns the listener call for the current state, to be run
// after mu is released.
func (s *syncCoordinator) changedLocked() func() {
	listener := s.listener
	if listener == nil {
		return func() {}
	}
	view := s.snapshotLocked()
	return func() {
		listener(view)
	}
}

func (s *syncCoordinator) snapshotLocked() models.InboxView {
	view := models.InboxView{
		Accounts: append([]models.Account{}, s.accounts...),
		Chats:    append([]models.Chat{}, s.chats...),
		Messages: append([]models.Message{}, s.messages...),
	}
	if s.selected != nil {
		selected := *s.selected
		view.SelectedChat = &selected
	}
	return view
}
