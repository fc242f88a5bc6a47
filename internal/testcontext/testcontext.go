// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

// Package testcontext builds contexts for tests:
// log output routes through the test's logger,
// the context is canceled when the test finishes,
// and it honors the test binary's deadline if one is set.
package testcontext

import (
	"context"
	"testing"
	"time"

	"zombiezen.com/go/log/testlog"
)

// New returns a context for use in the given test.
func New(tb testing.TB) (context.Context, context.CancelFunc) {
	ctx := tb.Context()
	cancel := context.CancelFunc(func() {})
	if d, ok := deadline(tb); ok {
		ctx, cancel = context.WithDeadline(ctx, d)
	}
	return testlog.WithTB(ctx, tb), cancel
}

func deadline(x any) (deadline time.Time, ok bool) {
	d, ok := x.(interface {
		Deadline() (deadline time.Time, ok bool)
	})
	if !ok {
		return time.Time{}, false
	}
	return d.Deadline()
}
