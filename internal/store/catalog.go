// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/rendezvous/internal/models"
)

// PutCategory creates or replaces a category.
func (s *Store) PutCategory(ctx context.Context, c *models.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, categoryKey(c.ID), c)
	})
}

// GetCategory returns a category or ErrNotFound.
func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var c models.Category
	if err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, categoryKey(id), &c)
	}); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCategories returns the categories that exist among ids, keyed by id.
// Missing ids are omitted.
func (s *Store) GetCategories(ctx context.Context, ids []int64) (map[int64]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[int64]models.Category, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var c models.Category
			err := getJSON(txn, categoryKey(id), &c)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			out[id] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutActivity creates or replaces an activity.
func (s *Store) PutActivity(ctx context.Context, a *models.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, activityKey(a.ID), a)
	})
}

// GetActivity returns an activity or ErrNotFound.
func (s *Store) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var a models.Activity
	if err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, activityKey(id), &a)
	}); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActivities returns every activity in id order.
func (s *Store) ListActivities(ctx context.Context) ([]models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.Activity
	err := s.db.View(func(txn *badger.Txn) error {
		return scan(txn, []byte(activityPrefix), func(val []byte) error {
			var a models.Activity
			if err := json.Unmarshal(val, &a); err != nil {
				return fmt.Errorf("decode activity: %w", err)
			}
			out = append(out, a)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetActivitiesByIDs returns the activities that exist among ids, keyed by
// id. Missing ids are omitted.
func (s *Store) GetActivitiesByIDs(ctx context.Context, ids []int64) (map[int64]models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[int64]models.Activity, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var a models.Activity
			err := getJSON(txn, activityKey(id), &a)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			out[id] = a
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutUser creates or replaces a user.
func (s *Store) PutUser(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, userKey(u.ID), u)
	})
}

// GetUser returns a user or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var u models.User
	if err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), &u)
	}); err != nil {
		return nil, err
	}
	return &u, nil
}
