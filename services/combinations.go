package services

import (
	"fmt"
	"sort"
	"strings"

	"aynamodaapi/models"
)

// OutfitCombination is a non-empty ordered list of wardrobe items proposed
// as one outfit.
type OutfitCombination struct {
	Items []models.WardrobeItem
}

// ItemKey returns the sorted, comma-joined item ids. Feedback history and
// confidence patterns are grouped under the same key.
func (c OutfitCombination) ItemKey() string {
	return ItemSetKey(itemIDs(c.Items))
}

func itemIDs(items []models.WardrobeItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

// ItemSetKey builds the canonical key for an item id set.
func ItemSetKey(ids []uint) string {
	sorted := make([]uint, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ",")
}

// GenerationProfile makes the generator's execution mode explicit: callers
// inject caps and determinism instead of the generator branching on an
// ambient environment flag.
type GenerationProfile struct {
	MaxDressCombinations  int
	MaxTripleCombinations int
	MaxPairCombinations   int
	MaxTotal              int
	Deterministic         bool
}

var DefaultGenerationProfile = GenerationProfile{
	MaxDressCombinations:  100,
	MaxTripleCombinations: 200,
	MaxPairCombinations:   50,
	MaxTotal:              300,
	Deterministic:         false,
}

// BoundedGenerationProfile keeps generation cheap for constrained
// environments and deterministic for tests.
var BoundedGenerationProfile = GenerationProfile{
	MaxDressCombinations:  10,
	MaxTripleCombinations: 20,
	MaxPairCombinations:   10,
	MaxTotal:              30,
	Deterministic:         true,
}

// HasRedPinkClash reports the one non-negotiable color rule: a combination
// must never mix red and pink.
func HasRedPinkClash(items []models.WardrobeItem) bool {
	var hasRed, hasPink bool
	for _, color := range MergedColors(items) {
		if strings.Contains(color, "red") {
			hasRed = true
		}
		if strings.Contains(color, "pink") {
			hasPink = true
		}
	}
	return hasRed && hasPink
}

// GenerateCombinations enumerates candidate outfits from the item pool:
// dress-based first, then top+bottom+shoes, then unfiltered pairs as a
// fallback, padding with single items so callers always receive at least 3
// candidates when at least 1 item exists. Output order is not ranked.
func GenerateCombinations(items []models.WardrobeItem, profile GenerationProfile) []OutfitCombination {
	if len(items) == 0 {
		return []OutfitCombination{}
	}

	byCategory := map[models.GarmentCategory][]models.WardrobeItem{}
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}
	dresses := byCategory[models.CategoryDresses]
	tops := byCategory[models.CategoryTops]
	bottoms := byCategory[models.CategoryBottoms]
	shoes := byCategory[models.CategoryShoes]
	outerwear := byCategory[models.CategoryOuterwear]

	var combos []OutfitCombination
	// admit rejects red/pink clashes and reports whether the candidate was
	// actually added
	admit := func(candidate []models.WardrobeItem) bool {
		if HasRedPinkClash(candidate) {
			return false
		}
		combos = append(combos, OutfitCombination{Items: candidate})
		return true
	}
	totalFull := func() bool { return len(combos) >= profile.MaxTotal }

	// phase a: dress + shoes (+ first outerwear)
	dressCount := 0
dressLoop:
	for _, dress := range dresses {
		for _, shoe := range shoes {
			if dressCount >= profile.MaxDressCombinations || totalFull() {
				break dressLoop
			}
			candidate := []models.WardrobeItem{dress, shoe}
			if len(outerwear) > 0 {
				candidate = append(candidate, outerwear[0])
			}
			if admit(candidate) {
				dressCount++
			}
		}
	}

	// phase b: top + bottom + shoes (+ first outerwear)
	tripleCount := 0
tripleLoop:
	for _, top := range tops {
		for _, bottom := range bottoms {
			for _, shoe := range shoes {
				if tripleCount >= profile.MaxTripleCombinations || totalFull() {
					break tripleLoop
				}
				candidate := []models.WardrobeItem{top, bottom, shoe}
				if len(outerwear) > 0 {
					candidate = append(candidate, outerwear[0])
				}
				if admit(candidate) {
					tripleCount++
				}
			}
		}
	}

	// phase c: fallback pairs when no structured outfit was possible
	if len(combos) == 0 && len(items) >= 2 {
		pairCount := 0
	pairLoop:
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				if pairCount >= profile.MaxPairCombinations || totalFull() {
					break pairLoop
				}
				if admit([]models.WardrobeItem{items[i], items[j]}) {
					pairCount++
				}
			}
		}
	}

	// pad with single-item combinations so downstream always has >= 3
	// candidates to rank, preferring items not placed in any combo yet
	if len(combos) < 3 {
		used := map[uint]bool{}
		for _, combo := range combos {
			for _, item := range combo.Items {
				used[item.ID] = true
			}
		}
		padded := map[uint]bool{}
		pad := func(skipUsed bool) {
			for _, item := range items {
				if len(combos) >= 3 {
					return
				}
				if padded[item.ID] || (skipUsed && used[item.ID]) {
					continue
				}
				combos = append(combos, OutfitCombination{Items: []models.WardrobeItem{item}})
				padded[item.ID] = true
			}
		}
		pad(true)
		pad(false)
	}

	return combos
}
