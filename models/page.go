// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Page is one page of a backend collection.
//
// Services answer either with a bare JSON array or with a paged envelope
// {content, totalElements, totalPages}. Both decode into Page: a bare array
// yields TotalPages=1 and TotalElements=len(Items); an envelope without
// totalPages yields TotalPages=1.
type Page[T any] struct {
	Items         []T
	TotalElements int64
	TotalPages    int
}

type pageEnvelope[T any] struct {
	Content       []T    `json:"content"`
	TotalElements *int64 `json:"totalElements"`
	TotalPages    *int   `json:"totalPages"`
}

// UnmarshalJSON implements [json.Unmarshaler].
func (p *Page[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Page[T]{TotalPages: 1}
		return nil
	}

	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*p = Page[T]{Items: items, TotalElements: int64(len(items)), TotalPages: 1}
		return nil
	}

	var env pageEnvelope[T]
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	page := Page[T]{Items: env.Content, TotalElements: int64(len(env.Content)), TotalPages: 1}
	if env.TotalElements != nil {
		page.TotalElements = *env.TotalElements
	}
	if env.TotalPages != nil && *env.TotalPages > 0 {
		page.TotalPages = *env.TotalPages
	}
	*p = page
	return nil
}

// ListQuery carries the query parameters of a collection request. Page is
// 0-based as on the wire.
type ListQuery struct {
	Page       int
	Size       int
	Search     string
	Status     string
	UnreadOnly bool
	UserID     string
}

// Params renders q as URL query parameters, omitting empty values.
func (q ListQuery) Params() map[string]string {
	params := map[string]string{
		"page": strconv.Itoa(q.Page),
	}
	if q.Size > 0 {
		params["size"] = strconv.Itoa(q.Size)
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.UnreadOnly {
		params["unreadOnly"] = "true"
	}
	if q.UserID != "" {
		params["userId"] = q.UserID
	}
	return params
}
