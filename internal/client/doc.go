// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the commerce console process runtime.
//
// It wires configuration, the sealed profile storage, the API gateway
// adapter, the console services, the background poller and the terminal UI
// into a single process lifecycle.
package client
