// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// DedupPolicy reports whether candidate should replace current as the
// canonical reflection of their shared dedup key. A policy must be a strict
// total order so the outcome does not depend on input order.
type DedupPolicy func(candidate, current models.Reflection) bool

// MostRecentWins keeps the most recently generated reflection. Equal
// generation times are broken by the greater id.
func MostRecentWins(candidate, current models.Reflection) bool {
	if c := candidate.GeneratedAt().Compare(current.GeneratedAt()); c != 0 {
		return c > 0
	}
	return candidate.ID > current.ID
}

// FirstSeenWins keeps the earliest generated reflection. Equal generation
// times are broken by the smaller id.
func FirstSeenWins(candidate, current models.Reflection) bool {
	if c := candidate.GeneratedAt().Compare(current.GeneratedAt()); c != 0 {
		return c < 0
	}
	return candidate.ID < current.ID
}

// PolicyByName maps a configured policy name to its [DedupPolicy].
func PolicyByName(name string) (DedupPolicy, error) {
	switch name {
	case "", config.DedupPolicyMostRecent:
		return MostRecentWins, nil
	case config.DedupPolicyFirstSeen:
		return FirstSeenWins, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDedupPolicy, name)
	}
}

// Deduplicator collapses reflections sharing a dedup key.
type Deduplicator struct {
	policy DedupPolicy
}

func NewDeduplicator(policy DedupPolicy) *Deduplicator {
	if policy == nil {
		policy = MostRecentWins
	}
	return &Deduplicator{policy: policy}
}

// Deduplicate returns one reflection per dedup key, ordered by day (newest
// first) and then by key. Tombstones are ignored.
func (d *Deduplicator) Deduplicate(candidates []models.Reflection) []models.Reflection {
	winners := make(map[string]models.Reflection, len(candidates))
	for _, r := range candidates {
		if r.IsDeleted() {
			continue
		}
		key := r.DedupKey()
		if current, ok := winners[key]; !ok || d.policy(r, current) {
			winners[key] = r
		}
	}

	out := make([]models.Reflection, 0, len(winners))
	for _, r := range winners {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b models.Reflection) int {
		if c := cmp.Compare(b.Day(), a.Day()); c != 0 {
			return c
		}
		return cmp.Compare(a.DedupKey(), b.DedupKey())
	})

	return out
}
