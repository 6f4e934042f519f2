// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
)

// clipboardOpener hands an authorization URL to the user: it prints the
// link and copies it to the system clipboard for pasting into a browser.
type clipboardOpener struct {
	out       io.Writer
	writeText func(string) error
	logger    *logger.Logger
}

func newClipboardOpener(out io.Writer, log *logger.Logger) *clipboardOpener {
	return &clipboardOpener{out: out, writeText: clipboard.WriteAll, logger: log}
}

// Open implements service.URLOpener. The link is printed even when the
// clipboard is unavailable.
func (o *clipboardOpener) Open(_ context.Context, url string) error {
	fmt.Fprintf(o.out, "open in your browser: %s\n", url)

	if err := o.writeText(url); err != nil {
		o.logger.Debug().Err(err).Msg("clipboard write failed")
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	fmt.Fprintln(o.out, renderNotice("link copied to clipboard"))
	return nil
}
