// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"
)

// Client defines the lifecycle contract of a runnable console.
type Client interface {
	// Run blocks until the operator quits or ctx is cancelled.
	Run(ctx context.Context) error

	io.Closer
}

var _ Client = (*App)(nil)
