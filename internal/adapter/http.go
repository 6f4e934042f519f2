// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-cross-messenger/internal/config"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/internal/store"
	"github.com/MKhiriev/go-cross-messenger/internal/utils"
	"github.com/MKhiriev/go-cross-messenger/models"
)

const (
	apiPrefix       = "/api"
	requestIDHeader = "X-Request-ID"
)

type httpGateway struct {
	client  *utils.HTTPClient
	session store.SessionStore
	ids     *utils.UUIDGenerator
	metrics *metrics.Metrics

	logger *logger.Logger
}

// NewHTTPGateway constructs the REST implementation of [Gateway]. It
// normalises and validates the base URL from cfg.HTTPAddress and configures
// the underlying HTTP client with the resolved base URL and request timeout.
// m may be nil.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPGateway(cfg config.ClientAdapter, session store.SessionStore, m *metrics.Metrics, log *logger.Logger) (Gateway, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpGateway{
		client:  utils.NewHTTPClient(baseURL+apiPrefix, cfg.RequestTimeout),
		session: session,
		ids:     utils.NewUUIDGenerator(),
		metrics: m,
		logger:  log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Login implements [Gateway]. POST /api/auth/login without credential.
func (h *httpGateway) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := h.do(ctx, "login", h.request(ctx).SetBody(credentials), http.MethodPost, "/auth/login", &out)
	return out, err
}

// Register implements [Gateway]. POST /api/auth/register without credential.
func (h *httpGateway) Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := h.do(ctx, "register", h.request(ctx).SetBody(credentials), http.MethodPost, "/auth/register", &out)
	return out, err
}

func (h *httpGateway) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out models.AccountsResponse
	if err := h.do(ctx, "list_accounts", h.authedRequest(ctx), http.MethodGet, "/accounts", &out); err != nil {
		return nil, err
	}
	return nonNil(out.Accounts), nil
}

func (h *httpGateway) ListChats(ctx context.Context) ([]models.Chat, error) {
	var out models.ChatsResponse
	if err := h.do(ctx, "list_chats", h.authedRequest(ctx), http.MethodGet, "/chats", &out); err != nil {
		return nil, err
	}
	return nonNil(out.Chats), nil
}

// ListMessages implements [Gateway]. A non-positive limit falls back to
// [DefaultMessagesLimit].
func (h *httpGateway) ListMessages(ctx context.Context, chatID models.ID, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultMessagesLimit
	}

	req := h.authedRequest(ctx).
		SetPathParam("chatID", chatID.String()).
		SetQueryParam("limit", strconv.Itoa(limit))

	var out models.MessagesResponse
	if err := h.do(ctx, "list_messages", req, http.MethodGet, "/chats/{chatID}/messages", &out); err != nil {
		return nil, err
	}
	return nonNil(out.Messages), nil
}

func (h *httpGateway) SendMessage(ctx context.Context, req models.SendMessageRequest) (models.SendMessageResponse, error) {
	var out models.SendMessageResponse
	err := h.do(ctx, "send_message", h.authedRequest(ctx).SetBody(req), http.MethodPost, "/messages/send", &out)
	return out, err
}

func (h *httpGateway) StartTelegramLink(ctx context.Context, phone string) (models.TelegramStartResponse, error) {
	var out models.TelegramStartResponse
	body := models.TelegramStartRequest{Phone: phone}
	err := h.do(ctx, "telegram_start", h.authedRequest(ctx).SetBody(body), http.MethodPost, "/auth/telegram/start", &out)
	return out, err
}

func (h *httpGateway) VerifyTelegramLink(ctx context.Context, phone, code string) (models.TelegramVerifyResponse, error) {
	var out models.TelegramVerifyResponse
	body := models.TelegramVerifyRequest{Phone: phone, Code: code}
	err := h.do(ctx, "telegram_verify", h.authedRequest(ctx).SetBody(body), http.MethodPost, "/auth/telegram/verify", &out)
	return out, err
}

func (h *httpGateway) InstagramAuthURL(ctx context.Context) (string, error) {
	var out models.InstagramAuthURLResponse
	if err := h.do(ctx, "instagram_url", h.authedRequest(ctx), http.MethodGet, "/auth/instagram/url", &out); err != nil {
		return "", err
	}
	if out.AuthURL == "" {
		return "", fmt.Errorf("instagram_url: %w: empty auth_url", ErrDecodeResponse)
	}
	return out.AuthURL, nil
}

func (h *httpGateway) DisconnectAccount(ctx context.Context, accountID models.ID) error {
	req := h.authedRequest(ctx).SetPathParam("accountID", accountID.String())
	return h.do(ctx, "disconnect_account", req, http.MethodDelete, "/accounts/{accountID}", nil)
}

// request builds a request without credential. Every request carries a
// correlation id, taken from ctx when present.
func (h *httpGateway) request(ctx context.Context) *resty.Request {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(requestIDHeader, requestID)
}

// authedRequest attaches the stored credential. A store failure is logged
// and the request goes out without the header; the server then answers 401.
func (h *httpGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)

	token, ok, err := h.session.Get(ctx)
	if err != nil {
		h.logger.Err(err).Str("func", "httpGateway.authedRequest").Msg("failed to read credential")
		return req
	}
	if ok {
		req.SetAuthToken(token)
	}
	return req
}

// do executes req and decodes a 2xx JSON body into out (when non-nil).
func (h *httpGateway) do(ctx context.Context, operation string, req *resty.Request, method, path string, out any) (err error) {
	start := time.Now()
	defer func() {
		h.metrics.ObserveGatewayRequest(operation, outcomeOf(err), time.Since(start))
		if err != nil {
			logger.FromContext(ctx).Debug().
				Err(err).
				Str("operation", operation).
				Dur("took", time.Since(start)).
				Msg("gateway call failed")
		}
	}()

	resp, err := req.Execute(method, path)
	if err != nil {
		return mapTransportError(operation, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: %w: %w", operation, ErrDecodeResponse, err)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func isServerError(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

func isNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}
