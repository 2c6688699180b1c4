package services

import (
	"testing"

	"aynamodaapi/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func item(category models.GarmentCategory, colors []string, tags []string) models.WardrobeItem {
	return models.WardrobeItem{
		Category: category,
		Colors:   pq.StringArray(colors),
		Tags:     pq.StringArray(tags),
	}
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "black", NormalizeColor("  Black "))
	assert.Equal(t, "black", NormalizeColor("#000000"))
	assert.Equal(t, "white", NormalizeColor("#FFF"))
	assert.Equal(t, "light blue", NormalizeColor("Light Blue"))
}

func TestNormalizeColorIdempotent(t *testing.T) {
	for _, raw := range []string{"Navy", "#000000", " RED ", "light blue"} {
		once := NormalizeColor(raw)
		assert.Equal(t, once, NormalizeColor(once))
	}
}

func TestColorHarmonyNeutralAboveThreshold(t *testing.T) {
	outfit := []models.WardrobeItem{
		item(models.CategoryTops, []string{"black"}, nil),
		item(models.CategoryBottoms, []string{"red"}, nil),
	}
	assert.Greater(t, CalculateColorHarmony(outfit), 0.7)
}

func TestColorHarmonyUniform(t *testing.T) {
	outfit := []models.WardrobeItem{
		item(models.CategoryTops, []string{"red"}, nil),
		item(models.CategoryBottoms, []string{"red"}, nil),
	}
	assert.Equal(t, 0.85, CalculateColorHarmony(outfit))
}

func TestColorHarmonyComplementaryBeatsClash(t *testing.T) {
	complementary := []models.WardrobeItem{
		item(models.CategoryTops, []string{"red"}, nil),
		item(models.CategoryBottoms, []string{"green"}, nil),
	}
	clash := []models.WardrobeItem{
		item(models.CategoryTops, []string{"red"}, nil),
		item(models.CategoryBottoms, []string{"pink"}, nil),
	}
	assert.Greater(t, CalculateColorHarmony(complementary), CalculateColorHarmony(clash))
}

func TestColorHarmonyRange(t *testing.T) {
	outfits := [][]models.WardrobeItem{
		{item(models.CategoryTops, []string{"red", "orange", "yellow"}, nil), item(models.CategoryShoes, []string{"purple"}, nil)},
		{item(models.CategoryTops, []string{"#808080"}, nil), item(models.CategoryBottoms, []string{"teal", "maroon"}, nil)},
		{item(models.CategoryDresses, nil, nil), item(models.CategoryShoes, nil, nil)},
	}
	for _, outfit := range outfits {
		score := CalculateColorHarmony(outfit)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestStyleConsistencySharedTags(t *testing.T) {
	outfit := []models.WardrobeItem{
		item(models.CategoryTops, nil, []string{"casual", "cotton"}),
		item(models.CategoryBottoms, nil, []string{"casual", "denim"}),
	}
	assert.Equal(t, 0.5, CalculateStyleConsistency(outfit))

	none := []models.WardrobeItem{
		item(models.CategoryTops, nil, []string{"sporty"}),
		item(models.CategoryBottoms, nil, []string{"elegant"}),
	}
	assert.Equal(t, 0.0, CalculateStyleConsistency(none))
}

func TestCategoryBalance(t *testing.T) {
	assert.Equal(t, 1.0, CalculateCategoryBalance([]models.WardrobeItem{
		item(models.CategoryTops, nil, nil),
		item(models.CategoryBottoms, nil, nil),
		item(models.CategoryShoes, nil, nil),
	}))
	assert.Equal(t, 0.4, CalculateCategoryBalance([]models.WardrobeItem{
		item(models.CategoryTops, nil, nil),
		item(models.CategoryTops, nil, nil),
	}))
	assert.Equal(t, 0.6, CalculateCategoryBalance([]models.WardrobeItem{
		item(models.CategoryTops, nil, nil),
		item(models.CategoryBottoms, nil, nil),
		item(models.CategoryShoes, nil, nil),
		item(models.CategoryOuterwear, nil, nil),
		item(models.CategoryAccessories, nil, nil),
	}))
}

func TestClassifyItemFormality(t *testing.T) {
	assert.Equal(t, "formal", ClassifyItemFormality(item(models.CategoryTops, nil, []string{"Office"})))
	assert.Equal(t, "casual", ClassifyItemFormality(item(models.CategoryTops, nil, []string{"weekend"})))
	assert.Equal(t, "neutral", ClassifyItemFormality(item(models.CategoryTops, nil, []string{"blue"})))
	// formal wins over casual when both are present
	assert.Equal(t, "formal", ClassifyItemFormality(item(models.CategoryTops, nil, []string{"casual", "business"})))
}

func TestOutfitCompatibilitySingleAndEmptyExactlyNeutral(t *testing.T) {
	assert.Equal(t, 0.5, CalculateOutfitCompatibility(nil))
	assert.Equal(t, 0.5, CalculateOutfitCompatibility([]models.WardrobeItem{
		item(models.CategoryDresses, []string{"red"}, nil),
	}))
}

func TestOutfitCompatibilityDeterministic(t *testing.T) {
	outfit := []models.WardrobeItem{
		item(models.CategoryTops, []string{"navy"}, []string{"office", "business"}),
		item(models.CategoryBottoms, []string{"black"}, []string{"office"}),
		item(models.CategoryShoes, []string{"brown"}, []string{"leather"}),
	}
	first := CalculateOutfitCompatibility(outfit)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateOutfitCompatibility(outfit))
	}
	assert.GreaterOrEqual(t, first, 0.0)
	assert.LessOrEqual(t, first, 1.0)
}

func TestOutfitCompatibilityNeutralOutfitScoresWell(t *testing.T) {
	// all-neutral palette with consistent formality should land comfortably
	// above the indifference point
	outfit := []models.WardrobeItem{
		item(models.CategoryTops, []string{"navy"}, []string{"office"}),
		item(models.CategoryBottoms, []string{"black"}, []string{"office"}),
		item(models.CategoryShoes, []string{"brown"}, []string{"office"}),
	}
	assert.Greater(t, CalculateOutfitCompatibility(outfit), 0.6)
}

func TestMergedColorsDeduplicatesAndNormalizes(t *testing.T) {
	outfit := []models.WardrobeItem{
		item(models.CategoryTops, []string{"Black", "#000000"}, nil),
		item(models.CategoryBottoms, []string{"white"}, nil),
	}
	assert.Equal(t, []string{"black", "white"}, MergedColors(outfit))
}
