// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingGC struct {
	calls atomic.Int32
	err   error
}

func (c *countingGC) RunGC() error {
	c.calls.Add(1)
	return c.err
}

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) CleanupExpired() int {
	c.calls.Add(1)
	return 1
}

func runFor(t *testing.T, svc *MaintenanceService, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestMaintenanceService_String(t *testing.T) {
	svc := NewMaintenanceService(nil, nil, MaintenanceConfig{}, zerolog.Nop())
	if got := svc.String(); got != "maintenance-service" {
		t.Errorf("String() = %q, want %q", got, "maintenance-service")
	}
}

func TestMaintenanceService_Ticks(t *testing.T) {
	gc := &countingGC{}
	cleaner := &countingCleaner{}
	svc := NewMaintenanceService(gc, cleaner, MaintenanceConfig{
		GCInterval:           10 * time.Millisecond,
		CacheCleanupInterval: 10 * time.Millisecond,
	}, zerolog.Nop())

	runFor(t, svc, 150*time.Millisecond)

	if gc.calls.Load() == 0 {
		t.Error("RunGC was never called")
	}
	if cleaner.calls.Load() == 0 {
		t.Error("CleanupExpired was never called")
	}
}

func TestMaintenanceService_GCErrorKeepsRunning(t *testing.T) {
	gc := &countingGC{err: errors.New("disk full")}
	svc := NewMaintenanceService(gc, nil, MaintenanceConfig{GCInterval: 10 * time.Millisecond}, zerolog.Nop())

	runFor(t, svc, 100*time.Millisecond)

	if gc.calls.Load() < 2 {
		t.Errorf("RunGC calls = %d, want at least 2", gc.calls.Load())
	}
}

func TestMaintenanceService_Disabled(t *testing.T) {
	gc := &countingGC{}
	cleaner := &countingCleaner{}
	svc := NewMaintenanceService(gc, cleaner, MaintenanceConfig{}, zerolog.Nop())

	runFor(t, svc, 50*time.Millisecond)

	if gc.calls.Load() != 0 || cleaner.calls.Load() != 0 {
		t.Errorf("zero intervals should disable work: gc=%d cleanup=%d", gc.calls.Load(), cleaner.calls.Load())
	}
}
