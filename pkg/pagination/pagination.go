// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how offset-based navigation is requested via query parameters
// and how the resulting summary is delivered in the API response.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/ministryfinder/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 50
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// MaxOffset keeps offset+limit within int range.
	MaxOffset = math.MaxInt - MaxLimit
)

// Params holds the parsed limit and offset from a request's query string.
type Params struct {
	Limit  int
	Offset int
}

// Meta is the pagination summary included in API list responses.
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// NewMeta constructs pagination metadata for a response.
//
// HasMore is true only when records remain past the current window;
// total == offset+limit is the last page. The comparison is written so
// that it cannot overflow for any non-negative offset.
func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset < total && total-params.Offset > params.Limit,
	}
}

// FromRequest parses "limit" and "offset" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or non-positive limits fall back to [DefaultLimit]; limits above
// [MaxLimit] are clamped to it. Negative or invalid offsets become 0 and
// offsets above [MaxOffset] are clamped to it.
func FromRequest(r *http.Request) Params {
	return FromValues(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"), DefaultLimit)
}

// FromValues applies the clamping rules of [FromRequest] to raw strings.
func FromValues(rawLimit, rawOffset string, defaultLimit int) Params {
	limit := convert.ToIntD(rawLimit, defaultLimit)
	offset := convert.ToIntD(rawOffset, 0)

	if limit < 1 {
		limit = defaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	if offset < 0 {
		offset = 0
	}

	if offset > MaxOffset {
		offset = MaxOffset
	}

	return Params{Limit: limit, Offset: offset}
}
