package services

import (
	"testing"

	"aynamodaapi/models"

	"github.com/stretchr/testify/assert"
)

func itemWithID(id uint, category models.GarmentCategory, colors []string) models.WardrobeItem {
	it := item(category, colors, nil)
	it.ID = id
	return it
}

func TestGenerateCombinationsEmptyWardrobe(t *testing.T) {
	combos := GenerateCombinations(nil, BoundedGenerationProfile)
	assert.Empty(t, combos)
}

func TestGenerateCombinationsSingleItem(t *testing.T) {
	combos := GenerateCombinations([]models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"white"}),
	}, BoundedGenerationProfile)

	assert.Len(t, combos, 1)
	assert.Len(t, combos[0].Items, 1)
	assert.Equal(t, uint(1), combos[0].Items[0].ID)
}

func TestGenerateCombinationsDressPhase(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		itemWithID(1, models.CategoryDresses, []string{"black"}),
		itemWithID(2, models.CategoryShoes, []string{"black"}),
		itemWithID(3, models.CategoryOuterwear, []string{"beige"}),
	}
	combos := GenerateCombinations(wardrobe, BoundedGenerationProfile)

	assert.NotEmpty(t, combos)
	assert.Len(t, combos[0].Items, 3)
	assert.Equal(t, models.CategoryDresses, combos[0].Items[0].Category)
	assert.Equal(t, models.CategoryShoes, combos[0].Items[1].Category)
	assert.Equal(t, models.CategoryOuterwear, combos[0].Items[2].Category)
}

func TestGenerateCombinationsTriplePhase(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"navy"}),
		itemWithID(2, models.CategoryBottoms, []string{"black"}),
		itemWithID(3, models.CategoryShoes, []string{"brown"}),
	}
	combos := GenerateCombinations(wardrobe, BoundedGenerationProfile)

	assert.GreaterOrEqual(t, len(combos), 3)
	assert.Len(t, combos[0].Items, 3)
	assert.Equal(t, "1,2,3", combos[0].ItemKey())
}

func TestGenerateCombinationsNeverMixesRedAndPink(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"red"}),
		itemWithID(2, models.CategoryTops, []string{"white"}),
		itemWithID(3, models.CategoryBottoms, []string{"pink"}),
		itemWithID(4, models.CategoryBottoms, []string{"black"}),
		itemWithID(5, models.CategoryShoes, []string{"white"}),
	}
	combos := GenerateCombinations(wardrobe, DefaultGenerationProfile)

	assert.NotEmpty(t, combos)
	for _, combo := range combos {
		if len(combo.Items) > 1 {
			assert.False(t, HasRedPinkClash(combo.Items), "combo %s mixes red and pink", combo.ItemKey())
		}
	}
}

func TestHasRedPinkClashSubstringMatch(t *testing.T) {
	clash := []models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"dark red"}),
		itemWithID(2, models.CategoryBottoms, []string{"hot pink"}),
	}
	assert.True(t, HasRedPinkClash(clash))

	fine := []models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"red"}),
		itemWithID(2, models.CategoryBottoms, []string{"navy"}),
	}
	assert.False(t, HasRedPinkClash(fine))
}

func TestGenerateCombinationsPairFallback(t *testing.T) {
	// no dresses, no full top+bottom+shoes triple possible
	wardrobe := []models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"white"}),
		itemWithID(2, models.CategoryBottoms, []string{"black"}),
	}
	combos := GenerateCombinations(wardrobe, BoundedGenerationProfile)

	assert.NotEmpty(t, combos)
	assert.Len(t, combos[0].Items, 2)
}

func TestGenerateCombinationsPadsToThree(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"white"}),
		itemWithID(2, models.CategoryBottoms, []string{"black"}),
		itemWithID(3, models.CategoryShoes, []string{"brown"}),
	}
	combos := GenerateCombinations(wardrobe, BoundedGenerationProfile)
	assert.GreaterOrEqual(t, len(combos), 3)
}

func TestGenerateCombinationsRespectsTotalCap(t *testing.T) {
	var wardrobe []models.WardrobeItem
	var id uint = 1
	for i := 0; i < 10; i++ {
		wardrobe = append(wardrobe, itemWithID(id, models.CategoryTops, []string{"white"}))
		id++
	}
	for i := 0; i < 10; i++ {
		wardrobe = append(wardrobe, itemWithID(id, models.CategoryBottoms, []string{"black"}))
		id++
	}
	for i := 0; i < 10; i++ {
		wardrobe = append(wardrobe, itemWithID(id, models.CategoryShoes, []string{"brown"}))
		id++
	}
	combos := GenerateCombinations(wardrobe, BoundedGenerationProfile)
	assert.LessOrEqual(t, len(combos), BoundedGenerationProfile.MaxTotal)
	assert.NotEmpty(t, combos)
}

func TestGenerateCombinationsDeterministicOrder(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		itemWithID(1, models.CategoryTops, []string{"white"}),
		itemWithID(2, models.CategoryTops, []string{"navy"}),
		itemWithID(3, models.CategoryBottoms, []string{"black"}),
		itemWithID(4, models.CategoryShoes, []string{"brown"}),
	}
	first := GenerateCombinations(wardrobe, BoundedGenerationProfile)
	second := GenerateCombinations(wardrobe, BoundedGenerationProfile)
	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ItemKey(), second[i].ItemKey())
	}
}

func TestItemSetKeySortsIDs(t *testing.T) {
	assert.Equal(t, "1,2,42", ItemSetKey([]uint{42, 1, 2}))
	assert.Equal(t, ItemSetKey([]uint{3, 7}), ItemSetKey([]uint{7, 3}))
	assert.Equal(t, "", ItemSetKey(nil))
}
