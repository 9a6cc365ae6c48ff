// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/cache"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/notify"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/internal/validators"
	"github.com/MKhiriev/go-journal-keeper/models"
)

type reflectionService struct {
	reflections *cache.Collection[models.Reflection]
	storage     StorageService
	store       *store.PersistentStore
	changes     *notify.Bus[models.Change]
	dedup       *Deduplicator
	sources     []ReflectionSource
	validator   validators.Validator
	ids         utils.IDGenerator
	now         func() time.Time

	// mu serialises SaveReflection so two saves for one dedup key cannot both
	// create a record.
	mu sync.Mutex

	logger *logger.Logger
}

func newReflectionService(c *cache.Cache, storage StorageService, st *store.PersistentStore, changes *notify.Bus[models.Change],
	dedup *Deduplicator, validator validators.Validator, ids utils.IDGenerator, logger *logger.Logger, sources ...ReflectionSource) *reflectionService {
	return &reflectionService{
		reflections: c.Reflections,
		storage:     storage,
		store:       st,
		changes:     changes,
		dedup:       dedup,
		sources:     sources,
		validator:   validator,
		ids:         ids,
		now:         utcNow,
		logger:      logger,
	}
}

// GetReflections implements [ReflectionService].
func (r *reflectionService) GetReflections(_ context.Context) []models.Reflection {
	return r.reflections.List(nil)
}

// GetReflectionsAsync implements [ReflectionService].
func (r *reflectionService) GetReflectionsAsync(ctx context.Context) ([]models.Reflection, error) {
	if err := r.storage.InitializeStorage(ctx); err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	candidates := r.reflections.List(nil)
	for _, src := range r.sources {
		derived, err := src.Reflections(ctx)
		if err != nil {
			return nil, fmt.Errorf("derive reflections: %w", err)
		}
		candidates = append(candidates, derived...)
	}

	out := r.dedup.Deduplicate(candidates)

	logger.FromContext(ctx).Debug().
		Str("func", "reflectionService.GetReflectionsAsync").
		Int("candidates", len(candidates)).
		Int("reflections", len(out)).
		Msg("reflections deduplicated")

	return out, nil
}

// SaveReflection implements [ReflectionService].
func (r *reflectionService) SaveReflection(ctx context.Context, input models.ReflectionInput) (models.Reflection, error) {
	if err := r.validator.Validate(ctx, input); err != nil {
		return models.Reflection{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	refl := models.Reflection{
		ID:          r.ids.Generate(),
		Date:        input.Date,
		Source:      input.Source,
		WinOfDay:    input.WinOfDay,
		Hurdle:      input.Hurdle,
		Priorities:  input.Priorities,
		SmallChange: input.SmallChange,
		ImageIDs:    input.ImageIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	key := refl.DedupKey()
	existing := r.dedup.Deduplicate(r.reflections.List(func(c models.Reflection) bool {
		return c.DedupKey() == key
	}))
	if len(existing) > 0 {
		refl.ID = existing[0].ID
		refl.CreatedAt = existing[0].CreatedAt
	}

	r.reflections.Upsert(refl)
	r.store.WriteOne(models.ReflectionsCollection, refl)
	r.changes.Publish(models.Change{Collection: models.ReflectionsCollection, Op: models.ChangeUpsert, IDs: []string{refl.ID}})

	logger.FromContext(ctx).Debug().
		Str("func", "reflectionService.SaveReflection").
		Str("id", refl.ID).
		Str("dedup_key", key).
		Bool("updated", len(existing) > 0).
		Msg("reflection saved")

	return refl, nil
}
