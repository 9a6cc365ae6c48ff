// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-journal-keeper/models"
)

// remoteReflection is the backend's reflection row.
type remoteReflection struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Source      string     `json:"source,omitempty"`
	WinOfDay    string     `json:"winOfDay"`
	Hurdle      string     `json:"hurdle"`
	Priorities  []string   `json:"priorities"`
	SmallChange string     `json:"smallChange"`
	Images      []string   `json:"images"`
	ImageIDs    []string   `json:"imageIds"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

func (r remoteReflection) toModel() (models.Reflection, error) {
	date, err := parseDay(r.Date)
	if err != nil {
		return models.Reflection{}, err
	}

	images := r.ImageIDs
	if len(images) == 0 {
		images = r.Images
	}

	refl := models.Reflection{
		ID:          r.ID,
		Date:        date,
		Source:      r.Source,
		WinOfDay:    r.WinOfDay,
		Hurdle:      r.Hurdle,
		Priorities:  r.Priorities,
		SmallChange: r.SmallChange,
		ImageIDs:    images,
		DeletedAt:   r.DeletedAt,
	}
	if r.UpdatedAt != nil {
		refl.UpdatedAt = *r.UpdatedAt
	}
	if r.CreatedAt != nil {
		refl.CreatedAt = *r.CreatedAt
	} else {
		refl.CreatedAt = refl.UpdatedAt
	}

	return refl, nil
}

func parseDay(raw string) (time.Time, error) {
	if t, err := time.Parse(models.DayLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reflection date %q", raw)
	}
	return t, nil
}
