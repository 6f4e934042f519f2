// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/internal/mock"
	"github.com/MKhiriev/go-cross-messenger/models"
)

var (
	chat42 = models.Chat{Platform: models.PlatformTelegram, ChatID: "42", AccountID: "7", Title: "Alice"}
	chat43 = models.Chat{Platform: models.PlatformTelegram, ChatID: "43", AccountID: "7", Title: "Bob"}

	messagesOf42 = []models.Message{
		{ID: "1", SenderName: "Alice", Text: "hi", Platform: models.PlatformTelegram},
		{ID: "2", SenderName: "Me", Text: "hello", Platform: models.PlatformTelegram},
	}
	messagesOf43 = []models.Message{
		{ID: "9", SenderName: "Bob", Text: "yo", Platform: models.PlatformTelegram},
	}
)

func newTestCoordinator(t *testing.T) (*syncCoordinator, *mock.MockGateway, *metrics.Metrics) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)
	m := metrics.New()
	return NewSyncCoordinator(gateway, 0, m, logger.Nop()).(*syncCoordinator), gateway, m
}

// ── full-replace pulls ──────────────────────────────────────────────────────

func TestSyncCoordinator_RefreshAccounts_Idempotent(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)
	ctx := context.Background()

	accounts := []models.Account{{ID: "7", Platform: models.PlatformTelegram, Status: "active"}}
	gateway.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil).Times(2)

	require.NoError(t, c.RefreshAccounts(ctx))
	first := c.Snapshot()
	require.NoError(t, c.RefreshAccounts(ctx))
	second := c.Snapshot()

	assert.Equal(t, accounts, first.Accounts)
	assert.Equal(t, first, second)
}

func TestSyncCoordinator_RefreshChats_FailureKeepsLastKnownGood(t *testing.T) {
	c, gateway, m := newTestCoordinator(t)
	ctx := context.Background()

	gomock.InOrder(
		gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42}, nil),
		gateway.EXPECT().ListChats(gomock.Any()).Return(nil, errNetwork),
	)

	require.NoError(t, c.RefreshChats(ctx))
	err := c.RefreshChats(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrNetwork)
	assert.Equal(t, []models.Chat{chat42}, c.Snapshot().Chats)
	assert.Equal(t, 1.0, metricValue(t, m, "crossmessenger_sync_refresh_failures_total",
		map[string]string{"collection": "chats", "trigger": "user"}))
}

func TestSyncCoordinator_RefreshChats_ReplacesWholeCollection(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)
	ctx := context.Background()

	gomock.InOrder(
		gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42, chat43}, nil),
		gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat43}, nil),
	)

	require.NoError(t, c.RefreshChats(ctx))
	require.NoError(t, c.RefreshChats(ctx))

	assert.Equal(t, []models.Chat{chat43}, c.Snapshot().Chats)
}

func TestSyncCoordinator_SelectChat_PullsMessages(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), adapter.DefaultMessagesLimit).Return(messagesOf42, nil)

	require.NoError(t, c.SelectChat(context.Background(), chat42))

	view := c.Snapshot()
	require.NotNil(t, view.SelectedChat)
	assert.Equal(t, chat42, *view.SelectedChat)
	assert.Equal(t, messagesOf42, view.Messages)
}

func TestSyncCoordinator_SelectChat_FailureKeepsSelection(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(nil, errNetwork)

	err := c.SelectChat(context.Background(), chat42)

	assert.ErrorIs(t, err, adapter.ErrNetwork)
	view := c.Snapshot()
	require.NotNil(t, view.SelectedChat)
	assert.Empty(t, view.Messages)
}

func TestSyncCoordinator_MessagesLimitFromConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)
	c := NewSyncCoordinator(gateway, 10, nil, logger.Nop())

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), 10).Return(messagesOf42, nil)

	require.NoError(t, c.SelectChat(context.Background(), chat42))
}

// ── stale responses ─────────────────────────────────────────────────────────

func TestSyncCoordinator_StaleMessagesAreDiscarded(t *testing.T) {
	c, gateway, m := newTestCoordinator(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).
		DoAndReturn(func(context.Context, models.ID, int) ([]models.Message, error) {
			close(started)
			<-release
			return messagesOf42, nil
		})
	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("43"), gomock.Any()).Return(messagesOf43, nil)

	done := make(chan error, 1)
	go func() {
		done <- c.SelectChat(ctx, chat42)
	}()

	waitClosed(t, started)
	require.NoError(t, c.SelectChat(ctx, chat43))
	close(release)
	require.NoError(t, <-done)

	view := c.Snapshot()
	require.NotNil(t, view.SelectedChat)
	assert.Equal(t, models.ID("43"), view.SelectedChat.ChatID)
	assert.Equal(t, messagesOf43, view.Messages)
	assert.Equal(t, 1.0, metricValue(t, m, "crossmessenger_sync_stale_messages_discarded_total", nil))
}

func TestSyncCoordinator_RefreshMessages_WithoutSelectionDiscarded(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil)

	require.NoError(t, c.RefreshMessages(context.Background(), "42"))
	assert.Empty(t, c.Snapshot().Messages)
}

func TestSyncCoordinator_SelectingOtherChatClearsMessages(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)
	ctx := context.Background()

	gomock.InOrder(
		gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil),
		gateway.EXPECT().ListMessages(gomock.Any(), models.ID("43"), gomock.Any()).Return(nil, errNetwork),
	)

	require.NoError(t, c.SelectChat(ctx, chat42))
	require.Error(t, c.SelectChat(ctx, chat43))

	assert.Empty(t, c.Snapshot().Messages, "messages of chat 42 must not show under chat 43")
}

func TestSyncCoordinator_ResetDropsInFlightPull(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	started := make(chan struct{})
	release := make(chan struct{})
	gateway.EXPECT().ListChats(gomock.Any()).DoAndReturn(func(context.Context) ([]models.Chat, error) {
		close(started)
		<-release
		return []models.Chat{chat42}, nil
	})

	done := make(chan error, 1)
	go func() {
		done <- c.RefreshChats(context.Background())
	}()

	waitClosed(t, started)
	c.Reset()
	close(release)
	require.NoError(t, <-done)

	assert.Empty(t, c.Snapshot().Chats)
}

// ── push reconciliation ─────────────────────────────────────────────────────

func TestSyncCoordinator_HandlePushEvent(t *testing.T) {
	tests := []struct {
		name         string
		event        models.PushEvent
		wantMessages bool
		wantChats    bool
	}{
		{
			name:         "new message in selected chat",
			event:        models.PushEvent{Type: models.PushEventMessageNew, ChatID: "42"},
			wantMessages: true,
			wantChats:    true,
		},
		{
			name:      "new message in other chat",
			event:     models.PushEvent{Type: models.PushEventMessageNew, ChatID: "43"},
			wantChats: true,
		},
		{
			name:      "new message without chat id",
			event:     models.PushEvent{Type: models.PushEventMessageNew},
			wantChats: true,
		},
		{
			name:  "unknown type",
			event: models.PushEvent{Type: "typing", ChatID: "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, gateway, _ := newTestCoordinator(t)
			ctx := context.Background()

			gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil)
			require.NoError(t, c.SelectChat(ctx, chat42))

			if tt.wantMessages {
				gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil)
			}
			if tt.wantChats {
				gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42, chat43}, nil)
			}

			c.HandlePushEvent(ctx, tt.event)
		})
	}
}

func TestSyncCoordinator_HandlePushEvent_FailuresAreSilent(t *testing.T) {
	c, gateway, m := newTestCoordinator(t)
	ctx := context.Background()

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil)
	require.NoError(t, c.SelectChat(ctx, chat42))

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(nil, errNetwork)
	gateway.EXPECT().ListChats(gomock.Any()).Return(nil, &adapter.ServerError{Status: 500, Detail: "boom"})

	assert.NotPanics(t, func() {
		c.HandlePushEvent(ctx, models.PushEvent{Type: models.PushEventMessageNew, ChatID: "42"})
	})

	assert.Equal(t, messagesOf42, c.Snapshot().Messages)
	assert.Equal(t, 1.0, metricValue(t, m, "crossmessenger_sync_refresh_failures_total",
		map[string]string{"collection": "messages", "trigger": "push"}))
	assert.Equal(t, 1.0, metricValue(t, m, "crossmessenger_sync_refresh_failures_total",
		map[string]string{"collection": "chats", "trigger": "push"}))
}

func TestSyncCoordinator_HandlePushEvent_DuplicatesConverge(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)
	ctx := context.Background()

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil).Times(3)
	gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42}, nil).Times(2)

	require.NoError(t, c.SelectChat(ctx, chat42))
	event := models.PushEvent{Type: models.PushEventMessageNew, ChatID: "42"}
	c.HandlePushEvent(ctx, event)
	afterFirst := c.Snapshot()
	c.HandlePushEvent(ctx, event)

	assert.Equal(t, afterFirst, c.Snapshot())
}

// ── user actions ────────────────────────────────────────────────────────────

func TestSyncCoordinator_SendMessage(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)
	ctx := context.Background()

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42[:1], nil)
	require.NoError(t, c.SelectChat(ctx, chat42))

	gomock.InOrder(
		gateway.EXPECT().SendMessage(gomock.Any(), models.SendMessageRequest{
			Platform: models.PlatformTelegram, AccountID: "7", ChatID: "42", Text: "hello",
		}).Return(models.SendMessageResponse{MessageID: "2"}, nil),
		gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil),
	)

	id, err := c.SendMessage(ctx, models.PlatformTelegram, "7", "42", "hello")

	require.NoError(t, err)
	assert.Equal(t, models.ID("2"), id)
	assert.Equal(t, messagesOf42, c.Snapshot().Messages)
}

func TestSyncCoordinator_SendMessage_FailureLeavesState(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)
	ctx := context.Background()

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil)
	require.NoError(t, c.SelectChat(ctx, chat42))
	before := c.Snapshot()

	gateway.EXPECT().SendMessage(gomock.Any(), gomock.Any()).
		Return(models.SendMessageResponse{}, &adapter.ServerError{Status: 400, Detail: "Invalid platform"})

	_, err := c.SendMessage(ctx, models.PlatformTelegram, "7", "42", "hello")

	var serverErr *adapter.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "Invalid platform", serverErr.Detail)
	assert.Equal(t, before, c.Snapshot())
}

func TestSyncCoordinator_SendMessage_Validation(t *testing.T) {
	c, _, _ := newTestCoordinator(t)
	ctx := context.Background()

	_, err := c.SendMessage(ctx, models.PlatformTelegram, "7", "42", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = c.SendMessage(ctx, "whatsapp", "7", "42", "hi")
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestSyncCoordinator_SendMessage_InternalPlatform(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gateway.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(models.SendMessageResponse{MessageID: "5"}, nil)
	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("3"), gomock.Any()).Return(nil, nil)

	_, err := c.SendMessage(context.Background(), models.PlatformInternal, "", "3", "ping")
	assert.NoError(t, err)
}

func TestSyncCoordinator_DisconnectAccount(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gomock.InOrder(
		gateway.EXPECT().DisconnectAccount(gomock.Any(), models.ID("7")).Return(nil),
		gateway.EXPECT().ListAccounts(gomock.Any()).Return([]models.Account{}, nil),
		gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{}, nil),
	)

	require.NoError(t, c.DisconnectAccount(context.Background(), "7"))
}

func TestSyncCoordinator_DisconnectAccount_Failure(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gateway.EXPECT().DisconnectAccount(gomock.Any(), models.ID("7")).Return(errNetwork)

	err := c.DisconnectAccount(context.Background(), "7")
	assert.ErrorIs(t, err, adapter.ErrNetwork)
}

func TestSyncCoordinator_AccountsLinked(t *testing.T) {
	c, gateway, m := newTestCoordinator(t)

	gateway.EXPECT().ListAccounts(gomock.Any()).Return(nil, errNetwork)
	gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42}, nil)

	c.AccountsLinked(context.Background())

	assert.Equal(t, []models.Chat{chat42}, c.Snapshot().Chats)
	assert.Equal(t, 1.0, metricValue(t, m, "crossmessenger_sync_refresh_failures_total",
		map[string]string{"collection": "accounts", "trigger": "linking"}))
}

func TestSyncCoordinator_BackgroundRefresh(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)
	ctx := context.Background()

	gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42}, nil)
	c.BackgroundRefresh(ctx, metrics.TriggerPeriodic)

	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil)
	require.NoError(t, c.SelectChat(ctx, chat42))

	gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42}, nil)
	gateway.EXPECT().ListMessages(gomock.Any(), models.ID("42"), gomock.Any()).Return(messagesOf42, nil)
	c.BackgroundRefresh(ctx, metrics.TriggerPeriodic)
}

// ── hooks and snapshots ─────────────────────────────────────────────────────

func TestSyncCoordinator_UnauthorizedHook(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	var calls int
	c.OnUnauthorized(func() { calls++ })

	gateway.EXPECT().ListAccounts(gomock.Any()).Return(nil, errUnauthorized)
	gateway.EXPECT().ListChats(gomock.Any()).Return(nil, errNetwork)

	err := c.RefreshAccounts(context.Background())
	assert.True(t, errors.Is(err, adapter.ErrUnauthorized))
	_ = c.RefreshChats(context.Background())

	assert.Equal(t, 1, calls)
}

func TestSyncCoordinator_OnChangeReceivesSnapshots(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	var (
		mu    sync.Mutex
		views []models.InboxView
	)
	c.OnChange(func(view models.InboxView) {
		mu.Lock()
		views = append(views, view)
		mu.Unlock()
	})

	gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42}, nil)
	require.NoError(t, c.RefreshChats(context.Background()))
	c.Reset()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, views, 2)
	assert.Equal(t, []models.Chat{chat42}, views[0].Chats)
	assert.Empty(t, views[1].Chats)
}

func TestSyncCoordinator_SnapshotIsACopy(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gateway.EXPECT().ListChats(gomock.Any()).Return([]models.Chat{chat42}, nil)
	require.NoError(t, c.RefreshChats(context.Background()))

	view := c.Snapshot()
	view.Chats[0].Title = "mutated"

	assert.Equal(t, "Alice", c.Snapshot().Chats[0].Title)
}

func TestSyncCoordinator_ConcurrentRefreshes(t *testing.T) {
	c, gateway, _ := newTestCoordinator(t)

	gateway.EXPECT().ListChats(gomock.Any()).DoAndReturn(func(context.Context) ([]models.Chat, error) {
		time.Sleep(time.Millisecond)
		return []models.Chat{chat42}, nil
	}).Times(10)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.RefreshChats(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, []models.Chat{chat42}, c.Snapshot().Chats)
}
