// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. The realtime route is registered outside /api so
// that the logging response writer never wraps the upgraded connection.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Route("/api", func(api chi.Router) {
		api.Use(h.withRequestID, h.withLogging, h.withInjectedFailures)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.register)
			auth.Post("/login", h.login)

			auth.Group(func(linking chi.Router) {
				linking.Use(h.auth)
				linking.Post("/telegram/start", h.startTelegram)
				linking.Post("/telegram/verify", h.verifyTelegram)
				linking.Get("/instagram/url", h.instagramURL)
			})
		})

		api.Group(func(inbox chi.Router) {
			inbox.Use(h.auth)
			inbox.Get("/accounts", h.listAccounts)
			inbox.Delete("/accounts/{accountID}", h.disconnectAccount)
			inbox.Get("/chats", h.listChats)
			inbox.Get("/chats/{chatID}/messages", h.listMessages)
			inbox.Post("/messages/send", h.sendMessage)
		})
	})

	router.Get("/ws/{userID}", h.hub.serve)

	return router
}
