// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package store

import "fmt"

const (
	categoryPrefix  = "category:"
	activityPrefix  = "activity:"
	userPrefix      = "user:"
	eventPrefix     = "event:"
	eventUserPrefix = "event_user:"
)

func categoryKey(id int64) []byte { return []byte(fmt.Sprintf("%s%020d", categoryPrefix, id)) }
func activityKey(id int64) []byte { return []byte(fmt.Sprintf("%s%020d", activityPrefix, id)) }
func userKey(id int64) []byte     { return []byte(fmt.Sprintf("%s%020d", userPrefix, id)) }
func eventKey(id string) []byte   { return []byte(eventPrefix + id) }

func eventUserKey(userID int64, eventID string) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", eventUserPrefix, userID, eventID))
}

func eventUserScanPrefix(userID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:", eventUserPrefix, userID))
}
