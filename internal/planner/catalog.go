// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/rendezvous/internal/events"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/store"
)

// PutActivity creates or replaces an activity. The availability schedule,
// when present, must be well formed and the category must exist.
func (s *Service) PutActivity(ctx context.Context, a *models.Activity) error {
	if a.Availability != nil {
		if err := a.Availability.Validate(); err != nil {
			return &InvalidInputError{Err: fmt.Errorf("availability: %w", err)}
		}
	}
	if _, err := s.getCategory(ctx, a.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &InvalidInputError{Err: err}
		}
		return err
	}

	a.UpdatedAt = s.now().UTC()
	if err := guardErr(s, "put_activity", func() error {
		return s.store.PutActivity(ctx, a)
	}); err != nil {
		return fmt.Errorf("store activity %d: %w", a.ID, err)
	}

	s.logger.Info().Int64("activity_id", a.ID).Int64("category_id", a.CategoryID).Msg("Activity saved")
	s.commit(ctx, events.TopicActivityChanged, events.Change{Kind: events.KindUpdated, ActivityID: a.ID})
	return nil
}

// GetActivity returns a stored activity.
func (s *Service) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	return s.getActivity(ctx, id)
}

// PutCategory creates or replaces a category. A parent, when set, must
// already exist and must not be the category itself.
func (s *Service) PutCategory(ctx context.Context, c *models.Category) error {
	if c.ParentID != nil {
		if *c.ParentID == c.ID {
			return &InvalidInputError{Err: fmt.Errorf("category %d cannot be its own parent", c.ID)}
		}
		if _, err := s.getCategory(ctx, *c.ParentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &InvalidInputError{Err: fmt.Errorf("parent %w", err)}
			}
			return err
		}
	}

	if err := guardErr(s, "put_category", func() error {
		return s.store.PutCategory(ctx, c)
	}); err != nil {
		return fmt.Errorf("store category %d: %w", c.ID, err)
	}

	// Parent links feed every category score.
	s.commit(ctx, events.TopicActivityChanged, events.Change{Kind: events.KindUpdated})
	return nil
}

// GetUser returns a stored user.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := guard(s, "get_user", func() (*models.User, error) {
		return s.store.GetUser(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return u, nil
}

// SetPreferences replaces the user's preferred categories, creating the
// user when it does not exist yet. Duplicate ids are collapsed.
func (s *Service) SetPreferences(ctx context.Context, userID int64, name string, categoryIDs []int64) (*models.User, error) {
	u, err := s.GetUser(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		u = &models.User{ID: userID}
	case err != nil:
		return nil, err
	}
	if name != "" {
		u.Name = name
	}

	seen := make(map[int64]struct{}, len(categoryIDs))
	prefs := make([]int64, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		prefs = append(prefs, id)
	}
	u.Preferences = prefs

	if err := guardErr(s, "put_user", func() error {
		return s.store.PutUser(ctx, u)
	}); err != nil {
		return nil, fmt.Errorf("store user %d: %w", userID, err)
	}

	s.commit(ctx, events.TopicPreferencesChanged, events.Change{Kind: events.KindUpdated, UserID: userID})
	return u, nil
}

func (s *Service) getCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := guard(s, "get_category", func() (*models.Category, error) {
		return s.store.GetCategory(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrCategoryNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load category %d: %w", id, err)
	}
	return c, nil
}
