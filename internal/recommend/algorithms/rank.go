// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package algorithms

import "github.com/tomtom215/ludolog/internal/models"

// UpdateRankedList applies the halving-jump promotion to a ranked list.
//
// Each entry whose id appears in activeIDs has its count incremented by the
// number of occurrences (duplicates count multiple times) and jumps to
// floor(originalIndex/2). When several reinforced entries collide on the
// same target, they are inserted in increasing original-index order, each
// shifted by the number of prior insertions at that target. Entries not
// reinforced keep their relative order and form the base the promoted
// entries are inserted into.
//
// Ids active but absent from the list become new entries (count = number of
// occurrences), inserted in first-appearance order directly after the last
// promoted entry's position; with no promoted entry they land at the list's
// half length. The result is truncated to maxLen.
//
// Counts never decrease, and a promoted rank is a function of prior rank
// only, never of the new count value. The input list is not mutated.
func UpdateRankedList(list models.RankedList, activeIDs []string, maxLen int) models.RankedList {
	if maxLen <= 0 {
		return nil
	}

	occurrences := make(map[string]int, len(activeIDs))
	order := make([]string, 0, len(activeIDs))
	for _, id := range activeIDs {
		if id == "" {
			continue
		}
		if occurrences[id] == 0 {
			order = append(order, id)
		}
		occurrences[id]++
	}

	if len(occurrences) == 0 {
		return truncate(list.Clone(), maxLen)
	}

	type promoted struct {
		entry   models.RankedEntry
		origIdx int
	}

	base := make(models.RankedList, 0, len(list))
	var actives []promoted

	for i, e := range list {
		if n, ok := occurrences[e.ID]; ok {
			e.Count += n
			actives = append(actives, promoted{entry: e, origIdx: i})
			delete(occurrences, e.ID)
			continue
		}
		base = append(base, e)
	}

	// Promote reinforced entries. Iteration is already in increasing
	// original-index order because the source list was walked in order.
	insertedAt := make(map[int]int, len(actives))
	lastPromotedID := ""
	for _, p := range actives {
		target := p.origIdx / 2
		pos := target + insertedAt[target]
		insertedAt[target]++
		if pos > len(base) {
			pos = len(base)
		}
		base = insertAt(base, pos, p.entry)
		lastPromotedID = p.entry.ID
	}

	// Ids active but not previously present enter after the last promoted
	// entry, or at half length when nothing was promoted.
	next := len(base) / 2
	if lastPromotedID != "" {
		for i, e := range base {
			if e.ID == lastPromotedID {
				next = i + 1
				break
			}
		}
	}
	for _, id := range order {
		n, ok := occurrences[id]
		if !ok {
			continue // was already present and promoted above
		}
		if next > len(base) {
			next = len(base)
		}
		base = insertAt(base, next, models.RankedEntry{ID: id, Count: n})
		next++
	}

	return truncate(base, maxLen)
}

// insertAt inserts e into list at index pos, shifting later entries right.
func insertAt(list models.RankedList, pos int, e models.RankedEntry) models.RankedList {
	list = append(list, models.RankedEntry{})
	copy(list[pos+1:], list[pos:])
	list[pos] = e
	return list
}

// truncate caps the list at maxLen.
func truncate(list models.RankedList, maxLen int) models.RankedList {
	if len(list) > maxLen {
		return list[:maxLen]
	}
	return list
}
