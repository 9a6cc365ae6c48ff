// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-journal-keeper/internal/cache"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// NoteSourcePrefix prefixes the Source of note-derived reflections.
const NoteSourcePrefix = "note:"

// NoteReflectionSource derives one reflection per note of a category, dated on
// the day the note was last changed. The reflection id is stable for a note
// and day, so rederiving never produces a new record.
type NoteReflectionSource struct {
	notes    *cache.Collection[models.Note]
	category string
}

func NewNoteReflectionSource(notes *cache.Collection[models.Note], category string) *NoteReflectionSource {
	return &NoteReflectionSource{notes: notes, category: category}
}

// Reflections implements [ReflectionSource].
func (s *NoteReflectionSource) Reflections(_ context.Context) ([]models.Reflection, error) {
	notes := s.notes.List(func(n models.Note) bool {
		return !n.IsDeleted() && n.Category != nil && *n.Category == s.category
	})

	out := make([]models.Reflection, 0, len(notes))
	for _, n := range notes {
		day := n.UpdatedAt.Format(models.DayLayout)
		r := models.Reflection{
			ID:        NoteSourcePrefix + n.ID + ":" + day,
			Date:      n.UpdatedAt,
			Source:    NoteSourcePrefix + n.ID,
			WinOfDay:  n.Title,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		}
		// ciphertext is never surfaced
		if !n.IsEncrypted {
			r.SmallChange = n.Content
		}
		out = append(out, r)
	}

	return out, nil
}
