// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

// Package pagination provides page/limit pagination over in-memory slices and
// the response envelope shared by every paginated endpoint.
package pagination

import (
	"context"
	"math"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Options are the caller-supplied paging parameters. Zero values select the
// defaults.
type Options struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies defaults and clamps: page >= 1, 1 <= limit <= MaxLimit.
// A zero page or limit selects the default; negative values clamp to 1.
func Normalize(o Options) Options {
	page := o.Page
	if page == 0 {
		page = DefaultPage
	}
	if page < 1 {
		page = 1
	}

	limit := o.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Options{Page: page, Limit: limit}
}

// Params is the skip/take pair derived from normalized options.
type Params struct {
	Skip int
	Take int
}

// ParamsFor converts normalized options to skip/take. A page whose offset
// would overflow int yields Skip == math.MaxInt, which is past the end of
// any slice.
func ParamsFor(o Options) Params {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		return Params{Take: o.Limit}
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return Params{Skip: math.MaxInt, Take: o.Limit}
	}
	return Params{Skip: (o.Page - 1) * o.Limit, Take: o.Limit}
}

// Meta describes where a page sits within the full result set.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Result is one page of data with its metadata.
type Result[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Build wraps an already-sliced page. page and limit must be normalized.
func Build[T any](data []T, total, page, limit int) Result[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Result[T]{
		Data: data,
		Pagination: Meta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}

// Paginate slices items according to opts. Pages past the end return an
// empty Data slice with accurate metadata.
func Paginate[T any](items []T, opts Options) Result[T] {
	o := Normalize(opts)
	p := ParamsFor(o)
	total := len(items)

	if p.Skip >= total {
		return Build([]T{}, total, o.Page, o.Limit)
	}
	end := p.Skip + min(p.Take, total-p.Skip)
	page := make([]T, end-p.Skip)
	copy(page, items[p.Skip:end])
	return Build(page, total, o.Page, o.Limit)
}

// Fetch paginates a source that can count and load ranges on its own, such
// as a storage scan.
func Fetch[T any](
	ctx context.Context,
	opts Options,
	count func(ctx context.Context) (int, error),
	load func(ctx context.Context, p Params) ([]T, error),
) (Result[T], error) {
	o := Normalize(opts)
	total, err := count(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	data, err := load(ctx, ParamsFor(o))
	if err != nil {
		return Result[T]{}, err
	}
	return Build(data, total, o.Page, o.Limit), nil
}
