// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DayLayout is the layout of the day component of a reflection dedup key.
const DayLayout = "2006-01-02"

// Reflection is a daily summary record. Reflections may be entered by the
// user (daily check-in) or derived from note data; in both cases several
// candidates can exist for the same source event, which is why every
// reflection exposes a dedup key.
type Reflection struct {
	ID string `json:"id"`

	// Date is the day the reflection is about.
	Date time.Time `json:"date"`

	// Source identifies what the reflection was derived from. It is empty for
	// daily check-in reflections and "note:<id>" for note-derived ones.
	Source string `json:"source,omitempty"`

	WinOfDay    string   `json:"winOfDay"`
	Hurdle      string   `json:"hurdle"`
	Priorities  []string `json:"priorities,omitempty"`
	SmallChange string   `json:"smallChange"`
	ImageIDs    []string `json:"imageIds,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// RecordID implements [Record].
func (r Reflection) RecordID() string { return r.ID }

// RecordTime implements [Record].
func (r Reflection) RecordTime() time.Time { return r.GeneratedAt() }

// IsDeleted implements [Record].
func (r Reflection) IsDeleted() bool { return r.DeletedAt != nil }

// Day returns the calendar day of the reflection in its own location.
func (r Reflection) Day() string {
	return r.Date.Format(DayLayout)
}

// DedupKey identifies the source event of the reflection.
// Two reflections with the same key describe the same event.
func (r Reflection) DedupKey() string {
	return r.Source + "|" + r.Day()
}

// GeneratedAt is the moment the reflection was last produced: UpdatedAt when
// set, CreatedAt otherwise.
func (r Reflection) GeneratedAt() time.Time {
	if !r.UpdatedAt.IsZero() {
		return r.UpdatedAt
	}
	return r.CreatedAt
}

// ReflectionInput is the payload accepted when a reflection is saved.
type ReflectionInput struct {
	Date        time.Time `json:"date"`
	Source      string    `json:"source,omitempty"`
	WinOfDay    string    `json:"winOfDay"`
	Hurdle      string    `json:"hurdle"`
	Priorities  []string  `json:"priorities,omitempty"`
	SmallChange string    `json:"smallChange"`
	ImageIDs    []string  `json:"imageIds,omitempty"`
}
