package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/validation"
)

func TestDefault_Order(t *testing.T) {
	c := Default()

	var cropIDs []string
	for _, s := range c.Crops() {
		cropIDs = append(cropIDs, s.ID)
	}
	assert.Equal(t, []string{
		"corn", "carrot", "rice", "barley", "cabbage", "peppers", "coffee", "cotton",
		"cucumber", "eggplant", "garlic", "lettuce", "potato", "peas", "spinach",
		"strawberry", "sweet_potato", "tomato", "watermelon", "wheat", "golden_wheat", "mystic_berry",
	}, cropIDs)

	var treeIDs []string
	for _, s := range c.Trees() {
		treeIDs = append(treeIDs, s.ID)
	}
	assert.Equal(t, []string{"oak", "birch", "maple", "pine", "cedar", "ebony", "worldTree"}, treeIDs)
	assert.Len(t, c.All(), 29)
	assert.Equal(t, "corn", c.All()[0].ID)
}

func TestDefault_Lookups(t *testing.T) {
	c := Default()

	corn, ok := c.Get("corn")
	require.True(t, ok)
	assert.Equal(t, 20*time.Second, corn.GrowTime)
	assert.Equal(t, int64(10), corn.Value)
	assert.Equal(t, 0, corn.UnlockLevel)
	assert.Equal(t, "🌽", corn.Icon)

	assert.True(t, c.IsCrop("corn"))
	assert.False(t, c.IsTree("corn"))
	assert.True(t, c.IsTree("oak"))
	assert.True(t, c.IsValidFor("oak", domain.CategoryTree))
	assert.False(t, c.IsValidFor("oak", domain.CategoryCrop))

	assert.Equal(t, 12*time.Hour, c.GrowTime("oak"))
	assert.Equal(t, 8*time.Hour, c.CooldownTime("oak"))
	assert.Zero(t, c.CooldownTime("corn"))
	assert.Equal(t, int64(2500000), mustGet(t, c, "worldTree").UnlockCost)
}

func TestDefault_UnknownID(t *testing.T) {
	c := Default()

	assert.False(t, c.IsValid("dragonfruit"))
	assert.Zero(t, c.GrowTime("dragonfruit"))
	assert.Zero(t, c.Value("dragonfruit"))
	assert.Zero(t, c.XPFor("dragonfruit"))
	assert.Equal(t, DefaultIcon, c.Icon("dragonfruit"))
}

func TestDefault_TreeValues(t *testing.T) {
	c := Default()

	expected := map[string]int64{
		"oak":       604,
		"birch":     1127,
		"maple":     2629,
		"pine":      6312,
		"cedar":     16356,
		"ebony":     27991,
		"worldTree": 64957,
	}
	for id, value := range expected {
		assert.Equal(t, value, c.Value(id), id)
	}
}

func TestXPFor(t *testing.T) {
	c := Default()

	tests := []struct {
		id   string
		want int64
	}{
		{"corn", 2},
		{"carrot", 3},
		{"mystic_berry", 629},
		{"oak", 70},
		{"worldTree", 996},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, c.XPFor(tt.id))
		})
	}
}

func TestCropXP_OneMinuteCommon(t *testing.T) {
	assert.Equal(t, int64(6), CropXP(time.Minute, domain.RarityCommon))
	assert.Equal(t, int64(7), TreeXP(time.Minute, domain.RarityCommon))
	assert.Zero(t, CropXP(time.Minute, domain.Rarity("bogus")))
}

func TestNew_Rejects(t *testing.T) {
	crop := domain.Species{ID: "a", Category: domain.CategoryCrop, Rarity: domain.RarityCommon, GrowTime: time.Second}

	tests := []struct {
		name    string
		species []domain.Species
	}{
		{"blank id", []domain.Species{{Category: domain.CategoryCrop, Rarity: domain.RarityCommon}}},
		{"duplicate id", []domain.Species{crop, crop}},
		{"bad category", []domain.Species{{ID: "x", Category: "shrub", Rarity: domain.RarityCommon}}},
		{"bad rarity", []domain.Species{{ID: "x", Category: domain.CategoryCrop, Rarity: "shiny"}}},
		{"negative time", []domain.Species{{ID: "x", Category: domain.CategoryCrop, Rarity: domain.RarityCommon, GrowTime: -time.Second}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.species...)
			assert.ErrorIs(t, err, domain.ErrInvalidSpecies)
		})
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	schemas := validation.NewEmbeddedValidator()

	_, err := Load([]byte(`{"version": "1", "crops": [], "trees": []}`), schemas)
	assert.ErrorIs(t, err, domain.ErrInvalidSpecies)

	bad := `{"version": "1",
		"crops": [{"id": "a", "name": "A", "grow_time": "soon", "value": 1, "icon": "", "rarity": "common", "unlock_level": 0}],
		"trees": [{"id": "t", "name": "T", "grow_time": "1h", "cooldown": "1h", "icon": "", "rarity": "common", "unlock_cost": 1}]}`
	_, err = Load([]byte(bad), schemas)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grow_time")
}

func mustGet(t *testing.T, c *Catalog, id string) domain.Species {
	t.Helper()
	s, ok := c.Get(id)
	require.True(t, ok, id)
	return s
}
