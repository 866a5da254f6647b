package save

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/domain"
)

func decodeMap(t *testing.T, data string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	return raw
}

func TestMigrate_V1UnlockedTrees(t *testing.T) {
	raw := decodeMap(t, `{"version":1,"coins":5,"farm":{},"player":{},
		"trees":{"unlocked":true,"unlockedTrees":["oak","pine"]}}`)

	migrated, err := Migrate(raw)
	require.NoError(t, err)

	trees := migrated["trees"].(map[string]any)
	assert.NotContains(t, trees, "unlockedTrees")
	assert.Equal(t, map[string]any{"oak": true, "pine": true, "apple": false, "cherry": false}, trees["saplingsUnlocked"])
	assert.Equal(t, true, trees["unlocked"])
	assert.Equal(t, float64(2), migrated["version"])
}

func TestMigrate_MissingVersionIsV1(t *testing.T) {
	raw := decodeMap(t, `{"coins":5,"farm":{},"player":{}}`)

	migrated, err := Migrate(raw)
	require.NoError(t, err)

	assert.Equal(t, float64(2), migrated["version"])
	trees := migrated["trees"].(map[string]any)
	assert.Equal(t, false, trees["unlocked"])
	assert.Len(t, trees["saplingsUnlocked"], 3)
}

func TestMigrate_FoldsLegacyFarmGrid(t *testing.T) {
	raw := decodeMap(t, `{"version":1,"coins":5,"player":{},"unlockedTiles":3,
		"farmGrid":[{"state":"growing","cropId":"corn","plantedAt":1000}]}`)

	migrated, err := Migrate(raw)
	require.NoError(t, err)

	assert.NotContains(t, migrated, "farmGrid")
	assert.NotContains(t, migrated, "unlockedTiles")
	farm := migrated["farm"].(map[string]any)
	assert.Equal(t, float64(3), farm["unlockedTiles"])
	assert.Len(t, farm["tiles"], 1)
}

func TestMigrate_KeepsExistingSaplingFlags(t *testing.T) {
	raw := decodeMap(t, `{"version":1,"coins":0,"farm":{},"player":{},
		"trees":{"saplingsUnlocked":{"oak":true}}}`)

	migrated, err := Migrate(raw)
	require.NoError(t, err)

	saplings := migrated["trees"].(map[string]any)["saplingsUnlocked"].(map[string]any)
	assert.Equal(t, true, saplings["oak"])
	assert.Equal(t, false, saplings["cherry"])
}

func TestMigrate_RejectsFutureVersion(t *testing.T) {
	_, err := Migrate(decodeMap(t, `{"version":3,"coins":0,"farm":{},"player":{}}`))
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
}

func TestMigrate_RejectsNonNumericVersion(t *testing.T) {
	_, err := Migrate(decodeMap(t, `{"version":"two"}`))
	assert.ErrorIs(t, err, domain.ErrCorruptSave)
}

func TestMigrate_NumericStringVersion(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"current as string", `{"version":"2","coins":5,"farm":{},"player":{}}`, nil},
		{"legacy as string", `{"version":"1","coins":5,"farm":{},"player":{},"trees":{"unlockedTrees":["oak"]}}`, nil},
		{"empty string", `{"version":"","coins":5,"farm":{},"player":{}}`, nil},
		{"future as string", `{"version":"3","coins":5,"farm":{},"player":{}}`, domain.ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migrated, err := Migrate(decodeMap(t, tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, float64(CurrentVersion), migrated["version"])
		})
	}
}

func TestDeserialize_StringVersion(t *testing.T) {
	state, err := Deserialize(context.Background(),
		[]byte(`{"version":"2","coins":42,"farm":{"unlockedTiles":2,"tiles":[]},"player":{"level":2,"xp":3,"xpToNext":120}}`),
		catalog.Default(), baseTime)
	require.NoError(t, err)
	assert.Equal(t, int64(42), state.Coins)
	assert.Equal(t, 2, state.Farm.UnlockedTiles)
	assert.Equal(t, 2, state.Player.Level)
}

func TestMigrate_Idempotent(t *testing.T) {
	inputs := []string{
		`{"version":1,"coins":5,"farm":{},"player":{},"trees":{"unlockedTrees":["oak"]}}`,
		`{"coins":5,"unlockedTiles":2,"farmGrid":[],"player":{}}`,
		`{"version":2,"coins":5,"farm":{"unlockedTiles":1,"tiles":[]},"player":{},"trees":{"saplingsUnlocked":{"oak":false}}}`,
	}

	for _, input := range inputs {
		once, err := Migrate(decodeMap(t, input))
		require.NoError(t, err)

		copyData, err := json.Marshal(once)
		require.NoError(t, err)
		twice, err := Migrate(decodeMap(t, string(copyData)))
		require.NoError(t, err)

		assert.Equal(t, once, twice, input)
	}
}
