package save

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/game"
)

var baseTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(at *time.Time) func() time.Time {
	return func() time.Time { return *at }
}

// playedGame returns a game with coins, a growing crop, a ready crop and an
// orchard with a tree in cooldown
func playedGame(t *testing.T, now *time.Time) *game.Game {
	t.Helper()
	ctx := context.Background()
	g := game.New(catalog.Default(), game.WithClock(fixedClock(now)))

	s := g.Snapshot()
	s.Coins = 20000
	g.Restore(ctx, s)

	_, err := g.UnlockTile(ctx, domain.GridFarm)
	require.NoError(t, err)
	require.NoError(t, g.UnlockOrchard(ctx))
	require.NoError(t, g.Plant(ctx, domain.GridFarm, 0, "corn"))
	require.NoError(t, g.Plant(ctx, domain.GridOrchard, 0, "oak"))

	*now = now.Add(12 * time.Hour)
	g.Tick(ctx)
	_, err = g.Harvest(ctx, domain.GridOrchard, 0)
	require.NoError(t, err)
	require.NoError(t, g.Plant(ctx, domain.GridFarm, 1, "corn"))
	return g
}

func TestDeserialize_RoundTrip(t *testing.T) {
	now := baseTime
	g := playedGame(t, &now)
	want := g.Snapshot()

	data, err := Encode(want, now)
	require.NoError(t, err)

	got, err := Deserialize(context.Background(), data, catalog.Default(), now)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDeserialize_OfflineGrowth(t *testing.T) {
	now := baseTime
	g := playedGame(t, &now)
	data, err := Encode(g.Snapshot(), now)
	require.NoError(t, err)

	later := now.Add(9 * time.Hour)
	state, err := Deserialize(context.Background(), data, catalog.Default(), later)
	require.NoError(t, err)

	assert.True(t, state.Farm.Tiles[0].IsReady())
	assert.True(t, state.Farm.Tiles[1].IsReady())
	oak := state.Orchard.Tiles[0]
	assert.True(t, oak.IsReady(), "cooldown of 8h has elapsed")
	assert.False(t, oak.IsCooldown)
}

func TestDeserialize_Sanitizes(t *testing.T) {
	data := `{
		"version": 2,
		"coins": "lots",
		"selectedCrop": "oak",
		"selectedTree": "apple",
		"farm": {
			"unlockedTiles": 99,
			"tiles": [
				{"state": "growing", "cropId": "corn", "plantedAt": 1767268800000, "isCooldown": true},
				{"state": "growing", "cropId": "dragonfruit", "plantedAt": 1767268800000},
				{"state": "growing", "cropId": "corn", "plantedAt": null},
				{"state": "withered", "cropId": "corn"},
				{"state": "ready", "cropId": "oak"},
				null
			]
		},
		"trees": {"unlocked": "yes", "unlockedTiles": 0, "saplingsUnlocked": {"apple": true, "maple": true, "oak": "true"}},
		"player": {"level": 0, "xp": -3, "xpToNext": 5}
	}`

	state, err := Deserialize(context.Background(), []byte(data), catalog.Default(), baseTime)
	require.NoError(t, err)

	assert.Zero(t, state.Coins)
	assert.Equal(t, "corn", state.SelectedCrop)
	assert.Equal(t, "oak", state.SelectedTree)
	assert.Equal(t, farm.MaxFarmTiles, state.Farm.UnlockedTiles)
	require.Len(t, state.Farm.Tiles, farm.MaxFarmTiles)
	require.Len(t, state.Orchard.Tiles, farm.MaxOrchardTiles)

	first := state.Farm.Tiles[0]
	assert.True(t, first.IsGrowing())
	assert.False(t, first.IsCooldown, "crops never cool down")
	for i := 1; i < farm.MaxFarmTiles; i++ {
		assert.True(t, state.Farm.Tiles[i].IsEmpty(), "tile %d", i)
	}

	assert.False(t, state.OrchardUnlocked)
	assert.Equal(t, 1, state.Orchard.UnlockedTiles)
	assert.Len(t, state.Saplings, len(catalog.Default().Trees()))
	assert.True(t, state.Saplings["maple"])
	assert.False(t, state.Saplings["oak"])
	assert.NotContains(t, state.Saplings, "apple")

	assert.Equal(t, 1, state.Player.Level)
	assert.Zero(t, state.Player.XP)
	assert.Equal(t, int64(100), state.Player.XPToNext)
}

func TestDeserialize_OriginalLayout(t *testing.T) {
	// exported by the browser build: lastSavedAt, null cropIds, no trees block
	data := `{"version":2,"coins":42,"selectedCrop":"carrot","selectedTree":"oak",
		"farm":{"unlockedTiles":2,"tiles":[{"state":"empty","cropId":null,"plantedAt":null,"isCooldown":false},
		{"state":"ready","cropId":"carrot","plantedAt":1767268800000,"isCooldown":false}]},
		"player":{"level":2,"xp":10,"xpToNext":120},"lastSavedAt":1767268800000}`

	rec, err := DecodeRecord(context.Background(), []byte(data), catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, int64(1767268800000), rec.SavedAt)
	assert.Equal(t, int64(42), rec.Coins)
	assert.Equal(t, "carrot", rec.SelectedCrop)
	assert.Equal(t, domain.TileReady, rec.Farm.Tiles[1].State)
	assert.Equal(t, 2, rec.Player.Level)
	assert.False(t, rec.Trees.Unlocked)
}

func TestDeserialize_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "not json", data: `{"version":`, want: domain.ErrCorruptSave},
		{name: "null", data: `null`, want: domain.ErrCorruptSave},
		{name: "array", data: `[1,2]`, want: domain.ErrCorruptSave},
		{name: "missing farm", data: `{"version":2,"coins":1,"player":{}}`, want: domain.ErrCorruptSave},
		{name: "missing coins", data: `{"version":2,"farm":{},"player":{}}`, want: domain.ErrCorruptSave},
		{name: "player not object", data: `{"version":2,"coins":1,"farm":{},"player":3}`, want: domain.ErrCorruptSave},
		{name: "tile not object", data: `{"version":2,"coins":1,"farm":{"tiles":["corn"]},"player":{}}`, want: domain.ErrCorruptSave},
		{name: "future version", data: `{"version":3,"coins":1,"farm":{},"player":{}}`, want: domain.ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(context.Background(), []byte(tt.data), catalog.Default(), baseTime)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSerialize_Layout(t *testing.T) {
	now := baseTime
	g := playedGame(t, &now)

	data, err := Encode(g.Snapshot(), now)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(CurrentVersion), raw["version"])
	assert.Equal(t, float64(now.UnixMilli()), raw["savedAt"])

	tiles := raw["farm"].(map[string]any)["tiles"].([]any)
	require.Len(t, tiles, farm.MaxFarmTiles)
	growing := tiles[1].(map[string]any)
	assert.Equal(t, "growing", growing["state"])
	assert.Equal(t, "corn", growing["cropId"])
	assert.Equal(t, float64(now.UnixMilli()), growing["plantedAt"])
	empty := tiles[5].(map[string]any)
	assert.Nil(t, empty["plantedAt"])
	assert.NotContains(t, empty, "cropId")

	trees := raw["trees"].(map[string]any)
	assert.Equal(t, true, trees["unlocked"])
	assert.Equal(t, true, trees["saplingsUnlocked"].(map[string]any)["oak"])
}

func TestText_RoundTrip(t *testing.T) {
	now := baseTime
	g := playedGame(t, &now)

	text, err := EncodeText(g.Snapshot(), now)
	require.NoError(t, err)

	data, err := DecodeText("\n  " + text + "  \n")
	require.NoError(t, err)
	state, err := Deserialize(context.Background(), data, catalog.Default(), now)
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), state)

	_, err = base64.StdEncoding.DecodeString(text)
	assert.NoError(t, err, "standard alphabet")
}

func TestDecodeText_Invalid(t *testing.T) {
	_, err := DecodeText("not base64 !!")
	assert.ErrorIs(t, err, domain.ErrCorruptSave)
}
