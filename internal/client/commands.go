// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/app"
	"github.com/MKhiriev/go-cross-messenger/internal/config"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/service"
	"github.com/MKhiriev/go-cross-messenger/models"
)

const (
	closeTimeout       = 5 * time.Second
	defaultLinkTimeout = 10 * time.Minute
	loggerRole         = "cross-messenger-client"
)

type cli struct {
	info      models.AppBuildInfo
	flags     *config.StructuredConfig
	opts      []Option
	newLogger func(logPath string) *logger.Logger
}

// NewRootCommand builds the command tree. opts are applied to every App the
// commands create, after the defaults.
func NewRootCommand(info models.AppBuildInfo, opts ...Option) *cobra.Command {
	c := &cli{
		info: info,
		opts: opts,
		newLogger: func(logPath string) *logger.Logger {
			return logger.NewClientLogger(loggerRole, logPath)
		},
	}

	root := &cobra.Command{
		Use:   "cross-messenger",
		Short: "One inbox for your Telegram and Instagram conversations",
		Long: `cross-messenger talks to the aggregation server: it links Telegram and
Instagram accounts, lists chats and messages, sends replies and follows new
messages in real time.

Quick Start:
  cross-messenger login -e me@example.com   # authenticate
  cross-messenger link telegram             # link a Telegram account
  cross-messenger watch                     # follow the inbox live`,
		Version:       info.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	c.flags = config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.statusCmd(),
		c.accountsCmd(),
		c.chatsCmd(),
		c.messagesCmd(),
		c.sendCmd(),
		c.disconnectCmd(),
		c.linkCmd(),
		c.watchCmd(),
		c.versionCmd(),
	)
	return root
}

// Execute runs the command line until completion or an interrupt signal.
func Execute(info models.AppBuildInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := NewRootCommand(info).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError("Error: "+err.Error()))
		os.Exit(1)
	}
}

// withApp builds an App from the parsed flags, runs fn and closes the app.
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) error {
	cfg, err := config.GetClientConfig(c.flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := c.newLogger(cfg.App.LogPath)

	opts := append([]Option{WithOutput(cmd.OutOrStdout())}, c.opts...)
	a, err := NewApp(ctx, cfg, log, opts...)
	if err != nil {
		log.Err(err).Msg("init client app error")
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if closeErr := a.Close(closeCtx); closeErr != nil {
			log.Err(closeErr).Msg("close client app")
		}
	}()

	return fn(log.WithContext(ctx), a)
}

// withSession is withApp for commands that need a stored credential.
func (c *cli) withSession(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) error {
	return c.withApp(cmd, func(ctx context.Context, a *App) error {
		if err := a.RequireSession(ctx); err != nil {
			return userFacing(err, app.MsgNotLoggedIn)
		}
		return fn(ctx, a)
	})
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			credentials, err := readCredentials(cmd, email, password)
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App) error {
				if err := a.Services().AuthService.Login(ctx, credentials); err != nil {
					return userFacing(err, app.MsgLoginFailed)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderNotice("logged in as "+credentials.Email))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when empty)")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a server account and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			credentials, err := readCredentials(cmd, email, password)
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App) error {
				if err := a.Services().AuthService.Register(ctx, credentials); err != nil {
					return userFacing(err, app.MsgRegistrationFailed)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderNotice("registered as "+credentials.Email))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when empty)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App) error {
				if err := a.Services().Logout(ctx); err != nil {
					return userFacing(err, app.MsgUnexpectedError)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderNotice("logged out"))
				return nil
			})
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the stored session against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App) error {
				ok, err := a.Services().AuthService.CheckAuth(ctx)
				out := cmd.OutOrStdout()
				switch {
				case !ok && err != nil:
					return userFacing(err, app.MsgUnexpectedError)
				case !ok:
					fmt.Fprintln(out, renderError(app.MsgNotLoggedIn))
				case err != nil:
					fmt.Fprintln(out, renderNotice("logged in"), "("+service.UserMessage(err, app.MsgServerUnreachable)+")")
				default:
					fmt.Fprintln(out, renderNotice("logged in"))
				}
				return nil
			})
		},
	}
}

func (c *cli) accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List linked accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, func(ctx context.Context, a *App) error {
				sync := a.Services().SyncCoordinator
				if err := sync.RefreshAccounts(ctx); err != nil {
					return userFacing(err, app.MsgFailedToLoad)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderAccounts(sync.Snapshot().Accounts))
				return nil
			})
		},
	}
}

func (c *cli) chatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List chats, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, func(ctx context.Context, a *App) error {
				sync := a.Services().SyncCoordinator
				if err := sync.RefreshChats(ctx); err != nil {
					return userFacing(err, app.MsgFailedToLoad)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderChats(sync.Snapshot().Chats, nil))
				return nil
			})
		},
	}
}

func (c *cli) messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <platform> <chat-id>",
		Short: "Show the latest messages of a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := models.ChatKey{Platform: models.Platform(args[0]), ChatID: args[1]}
			return c.withSession(cmd, func(ctx context.Context, a *App) error {
				sync := a.Services().SyncCoordinator
				if err := sync.RefreshChats(ctx); err != nil {
					return userFacing(err, app.MsgFailedToLoad)
				}

				chat := findChat(sync.Snapshot().Chats, key)
				if err := sync.SelectChat(ctx, chat); err != nil {
					return userFacing(err, app.MsgFailedToLoad)
				}

				view := sync.Snapshot()
				fmt.Fprint(cmd.OutOrStdout(), renderMessages(view.SelectedChat, view.Messages))
				return nil
			})
		},
	}
}

func (c *cli) sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <platform> <account-id> <chat-id> <text>...",
		Short: "Send a message to a chat",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform := models.Platform(args[0])
			text := strings.Join(args[3:], " ")
			return c.withSession(cmd, func(ctx context.Context, a *App) error {
				id, err := a.Services().SyncCoordinator.SendMessage(ctx, platform, args[1], args[2], text)
				if err != nil {
					return userFacing(err, app.MsgFailedToSendMessage)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderNotice("message sent"), idStyle.Render("#"+id.String()))
				return nil
			})
		},
	}
}

func (c *cli) disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <account-id>",
		Short: "Unlink an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, a *App) error {
				sync := a.Services().SyncCoordinator
				if err := sync.DisconnectAccount(ctx, models.ID(args[0])); err != nil {
					return userFacing(err, app.MsgFailedToDisconnect)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderAccounts(sync.Snapshot().Accounts))
				return nil
			})
		},
	}
}

func (c *cli) linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link a messaging account",
	}
	cmd.AddCommand(c.linkTelegramCmd(), c.linkInstagramCmd())
	return cmd
}

func (c *cli) linkTelegramCmd() *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "telegram",
		Short: "Link a Telegram account with a phone number and a code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, func(ctx context.Context, a *App) error {
				return linkTelegram(ctx, cmd, a, phone)
			})
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number in international format (prompted when empty)")
	return cmd
}

func linkTelegram(ctx context.Context, cmd *cobra.Command, a *App, phone string) error {
	linking := a.Services().Linking
	out := cmd.OutOrStdout()
	in := newPrompter(cmd)

	linking.Begin()
	if err := linking.Choose(models.PlatformTelegram); err != nil {
		return userFacing(err, app.MsgUnexpectedError)
	}

	for {
		if phone == "" {
			var err error
			if phone, err = in.ask("phone: "); err != nil {
				linking.Cancel()
				return err
			}
		}
		err := linking.SubmitPhone(ctx, phone)
		if err == nil {
			break
		}
		if !retryableStep(err) {
			return userFacing(err, app.MsgFailedToSendCode)
		}
		fmt.Fprintln(out, renderError(service.UserMessage(err, app.MsgFailedToSendCode)))
		phone = ""
	}
	fmt.Fprintln(out, renderNotice("code sent"))

	for {
		code, err := in.ask("code: ")
		if err != nil {
			linking.Cancel()
			return err
		}
		err = linking.SubmitCode(ctx, code)
		if err == nil {
			break
		}
		if !retryableStep(err) {
			return userFacing(err, app.MsgInvalidCode)
		}
		fmt.Fprintln(out, renderError(service.UserMessage(err, app.MsgInvalidCode)))
	}

	fmt.Fprint(out, renderLinking(linking.Session()))
	fmt.Fprint(out, renderAccounts(a.Services().SyncCoordinator.Snapshot().Accounts))
	return nil
}

func (c *cli) linkInstagramCmd() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "instagram",
		Short: "Link an Instagram account through the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, func(ctx context.Context, a *App) error {
				linking := a.Services().Linking
				out := cmd.OutOrStdout()

				linking.Begin()
				if err := linking.Choose(models.PlatformInstagram); err != nil {
					return userFacing(err, app.MsgUnexpectedError)
				}

				err := linking.Initiate(ctx)
				switch {
				case errors.Is(err, service.ErrOpenURL):
					fmt.Fprintln(out, renderError(app.MsgOpenBrowserFailed))
				case err != nil:
					return userFacing(err, app.MsgInstagramAuthURLFailed)
				}
				fmt.Fprint(out, renderLinking(linking.Session()))

				if !wait {
					return nil
				}

				waitCtx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()
				if err = linking.AwaitRedirectCompletion(waitCtx); err != nil {
					linking.Cancel()
					return userFacing(err, app.MsgCompleteInstagramAuthorization)
				}
				fmt.Fprint(out, renderAccounts(a.Services().SyncCoordinator.Snapshot().Accounts))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait until the new account shows up")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultLinkTimeout, "How long --wait polls")
	return cmd
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the inbox in real time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App) error {
				return userFacing(a.Watch(ctx), app.MsgUnexpectedError)
			})
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), renderBuildInfo(c.info))
		},
	}
}

// userError carries the text shown to the user and the underlying cause.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func userFacing(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var shown *userError
	if errors.As(err, &shown) {
		return err
	}

	msg := service.UserMessage(err, fallback)
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		msg = app.MsgNotLoggedIn
	case errors.Is(err, ErrSessionExpired):
		msg = app.MsgSessionExpired
	}
	return &userError{msg: msg, err: err}
}

// retryableStep reports whether the user may correct the input of a
// rejected linking step and submit again.
func retryableStep(err error) bool {
	var stepErr *service.WorkflowStepFailedError
	return errors.As(err, &stepErr) && !errors.Is(err, context.Canceled) && !adapter.IsUnauthorized(err)
}

func findChat(chats []models.Chat, key models.ChatKey) models.Chat {
	for _, chat := range chats {
		if chat.Key() == key {
			return chat
		}
	}
	return models.Chat{Platform: key.Platform, ChatID: models.ID(key.ChatID)}
}

func readCredentials(cmd *cobra.Command, email, password string) (models.Credentials, error) {
	p := newPrompter(cmd)

	var err error
	if strings.TrimSpace(email) == "" {
		if email, err = p.ask("email: "); err != nil {
			return models.Credentials{}, err
		}
	}
	if password == "" {
		if password, err = p.askSecret("password: "); err != nil {
			return models.Credentials{}, err
		}
	}
	return models.Credentials{Email: email, Password: password}, nil
}
