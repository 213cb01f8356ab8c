// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/commerce-console/internal/adapter"
)

// userError converts err into a [*UserError]. The backend message wins over
// fallback; an error that already is a UserError is returned unchanged.
func userError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return toUserError(err, fallback)
}

func toUserError(err error, fallback string) *UserError {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}

	msg := fallback
	if m, ok := adapter.MessageOf(err); ok {
		msg = m
	}

	return &UserError{
		Message:   msg,
		Retryable: adapter.IsRetryable(err),
		Err:       err,
	}
}

// MessageOf returns the operator-facing text of err.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	if m, ok := adapter.MessageOf(err); ok {
		return m
	}
	return fallback
}
