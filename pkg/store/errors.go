// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrTransport marks a failure to reach the backing store: dial errors,
// dropped connections, timeouts. Errors the server itself replied with
// (WRONGTYPE, script errors, redis.Nil) are never ErrTransport.
var ErrTransport = errors.New("store unreachable")

// wrapTransport tags err with ErrTransport unless it is a reply from the
// server, so callers can tell connectivity failures apart with errors.Is.
func wrapTransport(err error) error {
	if err == nil {
		return nil
	}
	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
