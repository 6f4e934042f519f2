// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Platform identifies the external messaging network an account, chat or
// message belongs to.
type Platform string

const (
	// PlatformTelegram is linked with a phone number and a one-time code.
	PlatformTelegram Platform = "telegram"
	// PlatformInstagram is linked through an external OAuth redirect.
	PlatformInstagram Platform = "instagram"
	// PlatformInternal is a server-local conversation between two users of
	// the aggregator. It can be sent to but never linked.
	PlatformInternal Platform = "internal"
)

// String returns the wire representation of the platform.
func (p Platform) String() string {
	return string(p)
}

// Linkable reports whether an external account of this platform can be
// connected through the linking workflow.
func (p Platform) Linkable() bool {
	return p == PlatformTelegram || p == PlatformInstagram
}

// Valid reports whether p is one of the platforms the server accepts when
// sending a message.
func (p Platform) Valid() bool {
	return p.Linkable() || p == PlatformInternal
}
