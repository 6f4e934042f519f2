// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-cross-messenger/models"
)

// VerificationCode is the code every Telegram link request accepts.
const VerificationCode = "12345"

type user struct {
	id       models.ID
	email    string
	password string
}

// state is the in-memory data set of the fake server.
type state struct {
	mu       sync.Mutex
	nextID   int
	users    map[string]*user
	accounts map[models.ID][]models.Account
	chats    map[models.ID][]models.Chat
	messages map[models.ID][]models.Message
	phones   map[models.ID]string
}

func newState() *state {
	return &state{
		users:    make(map[string]*user),
		accounts: make(map[models.ID][]models.Account),
		chats:    make(map[models.ID][]models.Chat),
		messages: make(map[models.ID][]models.Message),
		phones:   make(map[models.ID]string),
	}
}

func (s *state) newIDLocked() models.ID {
	s.nextID++
	return models.ID(strconv.Itoa(s.nextID))
}

func (s *state) register(email, password string) (models.ID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidBody
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return "", ErrEmailTaken
	}
	u := &user{id: s.newIDLocked(), email: email, password: password}
	s.users[email] = u
	return u.id, nil
}

func (s *state) login(email, password string) (models.ID, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok || u.password != password {
		return "", ErrInvalidCredentials
	}
	return u.id, nil
}

func (s *state) listAccounts(userID models.ID) []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.accounts[userID])
}

func (s *state) addAccount(userID models.ID, platform models.Platform, externalID string) models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := models.Account{
		ID:                s.newIDLocked(),
		Platform:          platform,
		Status:            "active",
		PlatformAccountID: externalID,
		CreatedAt:         models.NewTimestamp(time.Now().UTC()),
	}
	s.accounts[userID] = append(s.accounts[userID], account)
	return account
}

func (s *state) removeAccount(userID, accountID models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.accounts[userID]
	i := slices.IndexFunc(accounts, func(a models.Account) bool { return a.ID == accountID })
	if i < 0 {
		return ErrAccountNotFound
	}
	s.accounts[userID] = slices.Delete(accounts, i, i+1)
	s.chats[userID] = slices.DeleteFunc(s.chats[userID], func(c models.Chat) bool { return c.AccountID == accountID })
	return nil
}

func (s *state) addChat(userID models.ID, chat models.Chat) models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	if chat.ID == "" {
		chat.ID = s.newIDLocked()
	}
	s.chats[userID] = append(s.chats[userID], chat)
	return chat
}

func (s *state) listChats(userID models.ID) []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats := slices.Clone(s.chats[userID])
	models.SortChatsByRecency(chats)
	return chats
}

// findChatLocked looks chatID up among the user's chats by external id.
func (s *state) findChatLocked(userID, chatID models.ID) (int, bool) {
	i := slices.IndexFunc(s.chats[userID], func(c models.Chat) bool { return c.ChatID == chatID })
	return i, i >= 0
}

func (s *state) listMessages(userID, chatID models.ID, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findChatLocked(userID, chatID); !ok {
		return nil, ErrChatNotFound
	}

	messages := s.messages[chatID]
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return slices.Clone(messages), nil
}

// appendMessage stores a message in the user's chat and moves the chat to
// the top of the list.
func (s *state) appendMessage(userID, chatID models.ID, sender, text string) (models.Message, models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findChatLocked(userID, chatID)
	if !ok {
		return models.Message{}, models.Chat{}, ErrChatNotFound
	}
	chat := &s.chats[userID][i]

	now := models.NewTimestamp(time.Now().UTC())
	message := models.Message{
		ID:         s.newIDLocked(),
		ChatID:     chatID,
		Platform:   chat.Platform,
		SenderName: sender,
		Text:       text,
		Timestamp:  now,
		Status:     "sent",
	}
	s.messages[chatID] = append(s.messages[chatID], message)
	chat.LastMessageAt = now

	return message, *chat, nil
}

func (s *state) setMessages(chatID models.ID, messages []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[chatID] = slices.Clone(messages)
}

func (s *state) startPhoneLink(userID models.ID, phone string) error {
	if !strings.HasPrefix(phone, "+") || len(phone) < 4 {
		return ErrInvalidPhone
	}

	s.mu.Lock()
	s.phones[userID] = phone
	s.mu.Unlock()
	return nil
}

func (s *state) verifyPhoneLink(userID models.ID, phone, code string) (models.Account, error) {
	s.mu.Lock()
	pending := s.phones[userID]
	if pending == "" || pending != phone || code != VerificationCode {
		s.mu.Unlock()
		return models.Account{}, ErrInvalidCode
	}
	delete(s.phones, userID)
	s.mu.Unlock()

	return s.addAccount(userID, models.PlatformTelegram, phone), nil
}
