// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/app"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/internal/utils"
	"github.com/MKhiriev/go-cross-messenger/models"
)

// DefaultRedirectPollInterval is how often AwaitRedirectCompletion lists
// accounts.
const DefaultRedirectPollInterval = 3 * time.Second

// linkingWorkflow is the account linking state machine.
//
// seq changes on every transition, Begin and Cancel. A network step records
// seq before the call and drops its result when seq moved in the meantime,
// which covers cancelled attempts, restarted attempts and Back.
type linkingWorkflow struct {
	gateway      adapter.Gateway
	notifier     LinkCompletionNotifier
	opener       URLOpener
	ids          *utils.UUIDGenerator
	pollInterval time.Duration

	metrics *metrics.Metrics
	logger  *logger.Logger

	mu             sync.Mutex
	session        models.LinkingSession
	seq            uint64
	inFlight       bool
	onClose        func()
	onUnauthorized func()
}

// LinkingOption customises the linking workflow.
type LinkingOption func(*linkingWorkflow)

// WithRedirectPollInterval sets the AwaitRedirectCompletion poll interval.
func WithRedirectPollInterval(d time.Duration) LinkingOption {
	return func(w *linkingWorkflow) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// NewLinkingWorkflow creates an idle workflow; Begin starts the first
// attempt. opener and m may be nil.
func NewLinkingWorkflow(gateway adapter.Gateway, notifier LinkCompletionNotifier, opener URLOpener, m *metrics.Metrics, log *logger.Logger, opts ...LinkingOption) LinkingWorkflow {
	w := &linkingWorkflow{
		gateway:      gateway,
		notifier:     notifier,
		opener:       opener,
		ids:          utils.NewUUIDGenerator(),
		pollInterval: DefaultRedirectPollInterval,
		metrics:      m,
		logger:       log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *linkingWorkflow) Begin() models.LinkingSession {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session.Step != "" && !w.session.Step.Terminal() {
		w.logger.Debug().Str("attempt", w.session.ID).Msg("discarding linking attempt")
	}

	w.seq++
	w.inFlight = false
	w.session = models.LinkingSession{ID: w.ids.Generate()}
	w.transitionLocked(models.LinkingStepSelect)

	return w.session
}

func (w *linkingWorkflow) Session() models.LinkingSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

func (w *linkingWorkflow) Choose(platform models.Platform) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expectLocked(models.LinkingStepSelect); err != nil {
		return err
	}

	switch platform {
	case models.PlatformTelegram:
		w.session.Platform = platform
		w.transitionLocked(models.LinkingStepPhoneEntry)
	case models.PlatformInstagram:
		w.session.Platform = platform
		w.transitionLocked(models.LinkingStepPlatformBRedirect)
	default:
		return fmt.Errorf("%w: %q cannot be linked", ErrInvalidPlatform, platform)
	}
	return nil
}

func (w *linkingWorkflow) SubmitPhone(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)

	seq, err := w.startStep(models.LinkingStepPhoneEntry, missing(phone, app.MsgPhoneRequired))
	if err != nil {
		return err
	}

	_, err = w.gateway.StartTelegramLink(ctx, phone)

	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		return ErrAttemptDiscarded
	}
	w.inFlight = false
	if err != nil {
		stepErr := w.stepFailedLocked(models.LinkingStepPhoneEntry, app.MsgFailedToSendCode, err)
		w.mu.Unlock()
		w.unauthorized(err)
		return stepErr
	}
	w.session.PendingIdentifier = phone
	w.transitionLocked(models.LinkingStepCodeEntry)
	w.mu.Unlock()

	return nil
}

func (w *linkingWorkflow) SubmitCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)

	seq, err := w.startStep(models.LinkingStepCodeEntry, missing(code, app.MsgCodeRequired))
	if err != nil {
		return err
	}

	w.mu.Lock()
	phone := w.session.PendingIdentifier
	w.mu.Unlock()

	_, err = w.gateway.VerifyTelegramLink(ctx, phone, code)

	w.mu.Lock()
	if seq != w.seq {
		notifier := w.notifier
		w.mu.Unlock()
		// The server may have linked the account anyway; keep the inbox
		// in step with it even though the attempt is gone.
		if err == nil && notifier != nil {
			w.logger.Info().Msg("discarded verify linked an account")
			notifier.AccountsLinked(ctx)
		}
		return ErrAttemptDiscarded
	}
	w.inFlight = false
	if err != nil {
		stepErr := w.stepFailedLocked(models.LinkingStepCodeEntry, app.MsgInvalidCode, err)
		w.mu.Unlock()
		w.unauthorized(err)
		return stepErr
	}
	finish := w.doneLocked()
	w.mu.Unlock()

	finish(ctx)
	return nil
}

func (w *linkingWorkflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session.Step != models.LinkingStepCodeEntry {
		return fmt.Errorf("%w: back from %q", ErrInvalidTransition, w.session.Step)
	}
	w.transitionLocked(models.LinkingStepPhoneEntry)
	return nil
}

func (w *linkingWorkflow) Initiate(ctx context.Context) error {
	seq, err := w.startStep(models.LinkingStepPlatformBRedirect, "")
	if err != nil {
		return err
	}

	url, err := w.gateway.InstagramAuthURL(ctx)

	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		return ErrAttemptDiscarded
	}
	w.inFlight = false
	if err != nil {
		stepErr := w.stepFailedLocked(models.LinkingStepPlatformBRedirect, app.MsgInstagramAuthURLFailed, err)
		w.mu.Unlock()
		w.unauthorized(err)
		return stepErr
	}
	// seq is kept: a running AwaitRedirectCompletion stays valid
	w.session.AuthURL = url
	w.session.Notice = app.MsgCompleteInstagramAuthorization
	w.metrics.IncLinkingTransition(string(w.session.Platform), string(models.LinkingStepPlatformBRedirect))
	opener := w.opener
	w.mu.Unlock()

	if opener == nil {
		return nil
	}
	if err = opener.Open(ctx, url); err != nil {
		w.logger.Warn().Err(err).Msg("cannot open authorization url")
		return fmt.Errorf("%w: %w", ErrOpenURL, err)
	}
	return nil
}

func (w *linkingWorkflow) AwaitRedirectCompletion(ctx context.Context) error {
	w.mu.Lock()
	if err := w.expectLocked(models.LinkingStepPlatformBRedirect); err != nil {
		w.mu.Unlock()
		return err
	}
	seq := w.seq
	platform := w.session.Platform
	interval := w.pollInterval
	w.mu.Unlock()

	var known map[models.ID]struct{}

	err := retry.Do(ctx, retry.NewConstant(interval), func(ctx context.Context) error {
		if !w.current(seq) {
			return ErrAttemptDiscarded
		}

		accounts, err := w.gateway.ListAccounts(ctx)
		if err != nil {
			if adapter.IsUnauthorized(err) {
				return err
			}
			w.logger.Debug().Err(err).Msg("polling accounts failed")
			return retry.RetryableError(err)
		}

		if known == nil {
			known = accountIDs(accounts, platform)
			return retry.RetryableError(errAwaitingAuthorization)
		}
		for id := range accountIDs(accounts, platform) {
			if _, ok := known[id]; !ok {
				return nil
			}
		}
		return retry.RetryableError(errAwaitingAuthorization)
	})
	if err != nil {
		w.unauthorized(err)
		return err
	}

	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		return ErrAttemptDiscarded
	}
	finish := w.doneLocked()
	w.mu.Unlock()

	finish(ctx)
	return nil
}

func (w *linkingWorkflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	w.inFlight = false
	w.session.Step = models.LinkingStepCancelled
	w.metrics.IncLinkingTransition(string(w.session.Platform), string(models.LinkingStepCancelled))
}

func (w *linkingWorkflow) OnClose(callback func()) {
	w.mu.Lock()
	w.onClose = callback
	w.mu.Unlock()
}

func (w *linkingWorkflow) OnUnauthorized(hook func()) {
	w.mu.Lock()
	w.onUnauthorized = hook
	w.mu.Unlock()
}

// startStep checks the step and marks it in flight. A non-empty invalid
// message fails the step without a network call.
func (w *linkingWorkflow) startStep(step models.LinkingStep, invalid string) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expectLocked(step); err != nil {
		return 0, err
	}
	if w.inFlight {
		return 0, ErrStepInProgress
	}
	if invalid != "" {
		w.session.Err = invalid
		return 0, &WorkflowStepFailedError{Step: step, Detail: invalid}
	}

	w.session.Err = ""
	w.inFlight = true
	return w.seq, nil
}

// doneLocked moves the attempt to Done. The returned func, run once mu is
// released, refreshes the inbox once and closes the presentation.
func (w *linkingWorkflow) doneLocked() func(ctx context.Context) {
	w.transitionLocked(models.LinkingStepDone)
	attempt := w.session.ID
	notifier, onClose := w.notifier, w.onClose

	return func(ctx context.Context) {
		w.logger.Info().Str("attempt", attempt).Msg("account linked")
		if notifier != nil {
			notifier.AccountsLinked(ctx)
		}
		if onClose != nil {
			onClose()
		}
	}
}

func (w *linkingWorkflow) expectLocked(step models.LinkingStep) error {
	if w.session.Step != step {
		return fmt.Errorf("%w: step is %q, want %q", ErrInvalidTransition, w.session.Step, step)
	}
	return nil
}

func (w *linkingWorkflow) current(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return seq == w.seq
}

func (w *linkingWorkflow) transitionLocked(step models.LinkingStep) {
	w.seq++
	w.inFlight = false
	w.session.Step = step
	w.session.Err = ""
	w.metrics.IncLinkingTransition(string(w.session.Platform), string(step))
}

func (w *linkingWorkflow) stepFailedLocked(step models.LinkingStep, fallback string, err error) error {
	detail := detailOr(err, fallback)
	w.session.Err = detail
	w.logger.Warn().Err(err).Str("step", string(step)).Msg("linking step failed")
	return &WorkflowStepFailedError{Step: step, Detail: detail, Err: err}
}

func (w *linkingWorkflow) unauthorized(err error) {
	if !adapter.IsUnauthorized(err) {
		return
	}
	w.mu.Lock()
	hook := w.onUnauthorized
	w.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func missing(value, msg string) string {
	if value == "" {
		return msg
	}
	return ""
}

func accountIDs(accounts []models.Account, platform models.Platform) map[models.ID]struct{} {
	ids := make(map[models.ID]struct{})
	for _, account := range accounts {
		if account.Platform == platform {
			ids[account.ID] = struct{}{}
		}
	}
	return ids
}
