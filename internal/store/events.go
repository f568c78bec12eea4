// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/rendezvous/internal/models"
)

// ErrDuplicate is returned by CreateEvent when the id is already taken.
var ErrDuplicate = errors.New("already exists")

// CreateEvent stores a new calendar event and its user index entry.
func (s *Store) CreateEvent(ctx context.Context, e *models.CalendarEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(eventKey(e.ID)); err == nil {
			return fmt.Errorf("event %s: %w", e.ID, ErrDuplicate)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get event: %w", err)
		}
		if err := setJSON(txn, eventKey(e.ID), e); err != nil {
			return err
		}
		if err := txn.Set(eventUserKey(e.UserID, e.ID), []byte(e.ID)); err != nil {
			return fmt.Errorf("set user index: %w", err)
		}
		return nil
	})
}

// GetEvent returns an event or ErrNotFound.
func (s *Store) GetEvent(ctx context.Context, id string) (*models.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var e models.CalendarEvent
	if err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, eventKey(id), &e)
	}); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEvent replaces an existing event. The owning user is taken from the
// stored copy; an event cannot move between users.
func (s *Store) UpdateEvent(ctx context.Context, e *models.CalendarEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.CalendarEvent
		if err := getJSON(txn, eventKey(e.ID), &existing); err != nil {
			return err
		}
		e.UserID = existing.UserID
		return setJSON(txn, eventKey(e.ID), e)
	})
}

// DeleteEvent removes an event and its index entry.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.CalendarEvent
		if err := getJSON(txn, eventKey(id), &existing); err != nil {
			return err
		}
		if err := txn.Delete(eventKey(id)); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if err := txn.Delete(eventUserKey(existing.UserID, id)); err != nil {
			return fmt.Errorf("delete user index: %w", err)
		}
		return nil
	})
}

// ListEventsByUser returns a user's events ordered by start time.
func (s *Store) ListEventsByUser(ctx context.Context, userID int64) ([]models.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.CalendarEvent
	err := s.db.View(func(txn *badger.Txn) error {
		var ids []string
		if err := scan(txn, eventUserScanPrefix(userID), func(val []byte) error {
			ids = append(ids, string(val))
			return nil
		}); err != nil {
			return fmt.Errorf("scan user index: %w", err)
		}

		for _, id := range ids {
			var e models.CalendarEvent
			err := getJSON(txn, eventKey(id), &e)
			if errors.Is(err, ErrNotFound) {
				// Dangling index entry; the event was removed.
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}
