// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/service"
)

// ErrUserQuit is returned by Run when the operator quits the console.
var ErrUserQuit = errors.New("user quit the console")

// humanize returns the text shown for err. Transport failures read as an
// unavailable service; everything else uses the service message or fallback.
func humanize(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var ue *service.UserError
	if errors.As(err, &ue) && ue.Message != fallback {
		return ue.Message
	}
	if errors.Is(err, adapter.ErrTransport) {
		return app.MsgServiceUnavailable
	}
	return service.MessageOf(err, fallback)
}
