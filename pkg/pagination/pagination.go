// Copyright (c) 2026 CityInfo API. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered alongside the response body
// (the X-Pagination header on list endpoints).
package pagination

import (
	"net/http"
	"strconv"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/constants"
)

// Params holds the parsed pageNumber and pageSize from a request's query string.
type Params struct {
	PageNumber int
	PageSize   int
}

// Offset returns the SQL OFFSET value derived from [PageNumber] and [PageSize].
func (p Params) Offset() int {
	if p.PageNumber <= 1 {
		return 0
	}
	return (p.PageNumber - 1) * p.PageSize
}

// Metadata is the descriptive pagination block accompanying a result page.
//
// # Lifecycle
//
// Constructed fresh per query, immediately serialized, discarded. It is
// purely descriptive: CurrentPage is never clamped against TotalPages.
type Metadata struct {
	TotalItemCount int `json:"totalItemCount"`
	TotalPages     int `json:"totalPages"`
	PageSize       int `json:"pageSize"`
	CurrentPage    int `json:"currentPage"`
}

// NewMetadata constructs pagination metadata for a response.
//
// TotalPages = ceil(totalItemCount / pageSize); zero items yield zero pages.
func NewMetadata(totalItemCount, pageSize, currentPage int) Metadata {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItemCount + pageSize - 1) / pageSize
	}

	return Metadata{
		TotalItemCount: totalItemCount,
		TotalPages:     totalPages,
		PageSize:       pageSize,
		CurrentPage:    currentPage,
	}
}

// FromRequest parses "pageNumber" and "pageSize" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative values fall back to [constants.DefaultPageNumber] and
// [constants.DefaultPageSize]; pageSize is capped at [constants.MaxPageSize]
// here, at the HTTP boundary, so the repository below never needs an upper
// bound of its own.
func FromRequest(r *http.Request) Params {
	pageNumber := parseIntParam(r, "pageNumber", constants.DefaultPageNumber)
	pageSize := parseIntParam(r, "pageSize", constants.DefaultPageSize)

	if pageNumber < 1 {
		pageNumber = constants.DefaultPageNumber
	}

	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return Params{PageNumber: pageNumber, PageSize: pageSize}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
