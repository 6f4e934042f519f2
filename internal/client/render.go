// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-cross-messenger/internal/push"
	"github.com/MKhiriev/go-cross-messenger/models"
)

const (
	uiDivider  = "──────────────────────────────────────────────────────"
	timeLayout = "2006-01-02 15:04"
	maxTitle   = 40
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	platformStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	senderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

func renderPage(title, data string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(data) == "" {
		b.WriteString("  -\n")
		return b.String()
	}
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderAccounts(accounts []models.Account) string {
	var b strings.Builder
	for _, account := range accounts {
		fmt.Fprintf(&b, "%s  %s  %s\n",
			idStyle.Render("#"+account.ID.String()),
			platformStyle.Render(account.Platform.String()),
			valueOrDash(account.Status))
	}
	return renderPage("ACCOUNTS", b.String())
}

func renderChats(chats []models.Chat, selected *models.Chat) string {
	var b strings.Builder
	for _, chat := range chats {
		marker := " "
		if selected != nil && selected.Key() == chat.Key() {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %s  %s  %s  %s\n",
			marker,
			platformStyle.Render(chat.Platform.String()),
			fitText(valueOrDash(chat.Title), maxTitle),
			idStyle.Render(chat.ChatID.String()),
			dateStyle.Render(formatTime(chat.LastMessageAt)))
	}
	return renderPage("CHATS", b.String())
}

func renderMessages(chat *models.Chat, messages []models.Message) string {
	title := "MESSAGES"
	if chat != nil {
		title = "MESSAGES · " + valueOrDash(chat.Title)
	}

	var b strings.Builder
	for _, message := range messages {
		fmt.Fprintf(&b, "%s %s: %s\n",
			dateStyle.Render(formatTime(message.Timestamp)),
			senderStyle.Render(valueOrDash(message.SenderName)),
			message.Text)
	}
	return renderPage(title, b.String())
}

func renderInbox(view models.InboxView) string {
	out := renderChats(view.Chats, view.SelectedChat)
	if view.SelectedChat != nil {
		out += "\n" + renderMessages(view.SelectedChat, view.Messages)
	}
	return out
}

func renderLinking(session models.LinkingSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "platform: %s\n", platformStyle.Render(valueOrDash(session.Platform.String())))
	fmt.Fprintf(&b, "step: %s\n", session.Step)
	if session.AuthURL != "" {
		fmt.Fprintf(&b, "url: %s\n", session.AuthURL)
	}
	if session.Notice != "" {
		b.WriteString(noticeStyle.Render(session.Notice))
		b.WriteString("\n")
	}
	if session.Err != "" {
		b.WriteString(errorStyle.Render(session.Err))
		b.WriteString("\n")
	}
	return renderPage("LINK ACCOUNT", b.String())
}

func renderPushState(state push.State) string {
	style := dateStyle
	switch state {
	case push.StateConnected:
		style = noticeStyle
	case push.StateFailed:
		style = errorStyle
	}
	return "realtime: " + style.Render(state.String())
}

func renderBuildInfo(info models.AppBuildInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "version: %s\n", info.BuildVersion())
	fmt.Fprintf(&b, "date: %s\n", info.BuildDate())
	fmt.Fprintf(&b, "commit: %s\n", info.BuildCommit())
	return renderPage("GO-CROSS-MESSENGER", b.String())
}

func renderError(msg string) string {
	return errorStyle.Render(msg)
}

func renderNotice(msg string) string {
	return noticeStyle.Render(msg)
}

func formatTime(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(timeLayout)
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
