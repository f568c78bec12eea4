// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package pagination

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"defaults", Options{}, Options{Page: 1, Limit: 10}},
		{"explicit", Options{Page: 3, Limit: 25}, Options{Page: 3, Limit: 25}},
		{"negative page", Options{Page: -4, Limit: 5}, Options{Page: 1, Limit: 5}},
		{"negative limit", Options{Page: 2, Limit: -1}, Options{Page: 2, Limit: 1}},
		{"limit above max", Options{Page: 1, Limit: 500}, Options{Page: 1, Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name     string
		opts     Options
		wantData []int
		wantMeta Meta
	}{
		{
			name:     "first page",
			opts:     Options{Page: 1, Limit: 10},
			wantData: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			wantMeta: Meta{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name:     "last partial page",
			opts:     Options{Page: 3, Limit: 10},
			wantData: []int{20, 21, 22, 23, 24},
			wantMeta: Meta{Page: 3, Limit: 10, Total: 25, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name:     "past the end",
			opts:     Options{Page: 7, Limit: 10},
			wantData: []int{},
			wantMeta: Meta{Page: 7, Limit: 10, Total: 25, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name:     "max int page",
			opts:     Options{Page: math.MaxInt, Limit: 10},
			wantData: []int{},
			wantMeta: Meta{Page: math.MaxInt, Limit: 10, Total: 25, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name:     "max int page at max limit",
			opts:     Options{Page: math.MaxInt, Limit: MaxLimit},
			wantData: []int{},
			wantMeta: Meta{Page: math.MaxInt, Limit: MaxLimit, Total: 25, TotalPages: 1, HasNext: false, HasPrev: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.opts)
			if got.Pagination != tt.wantMeta {
				t.Errorf("meta = %+v, want %+v", got.Pagination, tt.wantMeta)
			}
			if got.Data == nil {
				t.Fatal("data must never be nil")
			}
			if len(got.Data) != len(tt.wantData) {
				t.Fatalf("len(data) = %d, want %d", len(got.Data), len(tt.wantData))
			}
			for i := range tt.wantData {
				if got.Data[i] != tt.wantData[i] {
					t.Errorf("data[%d] = %d, want %d", i, got.Data[i], tt.wantData[i])
				}
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	got := Paginate([]string{}, Options{})
	want := Meta{Page: 1, Limit: 10, Total: 0, TotalPages: 0}
	if got.Pagination != want {
		t.Errorf("meta = %+v, want %+v", got.Pagination, want)
	}
	if len(got.Data) != 0 {
		t.Errorf("expected empty data")
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	page := Paginate(items, Options{Page: 1, Limit: 2})
	page.Data[0] = 99
	if items[0] != 1 {
		t.Error("page data must be a copy")
	}
}

func TestParamsFor(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Params
	}{
		{"first page", Options{Page: 1, Limit: 10}, Params{Skip: 0, Take: 10}},
		{"third page", Options{Page: 3, Limit: 25}, Params{Skip: 50, Take: 25}},
		{"largest exact offset", Options{Page: math.MaxInt/100 + 1, Limit: 100}, Params{Skip: (math.MaxInt / 100) * 100, Take: 100}},
		{"offset overflows", Options{Page: math.MaxInt/100 + 2, Limit: 100}, Params{Skip: math.MaxInt, Take: 100}},
		{"max int page", Options{Page: math.MaxInt, Limit: 1}, Params{Skip: math.MaxInt - 1, Take: 1}},
		{"max int page wide", Options{Page: math.MaxInt, Limit: 2}, Params{Skip: math.MaxInt, Take: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParamsFor(tt.in)
			if got != tt.want {
				t.Errorf("ParamsFor(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.Skip < 0 {
				t.Errorf("ParamsFor(%+v) skip is negative", tt.in)
			}
		})
	}
}

func TestFetch_HugePage(t *testing.T) {
	var gotParams Params
	res, err := Fetch(context.Background(), Options{Page: math.MaxInt, Limit: 10},
		func(context.Context) (int, error) { return 3, nil },
		func(_ context.Context, p Params) ([]string, error) {
			gotParams = p
			return nil, nil
		})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotParams.Skip != math.MaxInt {
		t.Errorf("skip = %d, want math.MaxInt", gotParams.Skip)
	}
	if len(res.Data) != 0 || res.Pagination.HasNext || res.Pagination.Total != 3 {
		t.Errorf("result = %+v", res)
	}
}

func TestFetch(t *testing.T) {
	var gotParams Params
	res, err := Fetch(context.Background(), Options{Page: 2, Limit: 5},
		func(context.Context) (int, error) { return 12, nil },
		func(_ context.Context, p Params) ([]string, error) {
			gotParams = p
			return []string{"f", "g", "h", "i", "j"}, nil
		})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotParams != (Params{Skip: 5, Take: 5}) {
		t.Errorf("params = %+v", gotParams)
	}
	if res.Pagination.TotalPages != 3 || !res.Pagination.HasNext || !res.Pagination.HasPrev {
		t.Errorf("meta = %+v", res.Pagination)
	}

	boom := errors.New("boom")
	_, err = Fetch(context.Background(), Options{},
		func(context.Context) (int, error) { return 0, boom },
		func(context.Context, Params) ([]string, error) { return nil, nil })
	if !errors.Is(err, boom) {
		t.Errorf("Fetch() error = %v, want %v", err, boom)
	}
}
