package save

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/game"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/validation"
)

var (
	defaultSchemas     validation.SchemaValidator
	defaultSchemasOnce sync.Once
)

func schemas() validation.SchemaValidator {
	defaultSchemasOnce.Do(func() {
		defaultSchemas = validation.NewEmbeddedValidator()
	})
	return defaultSchemas
}

// Encode serializes s as JSON
func Encode(s game.State, now time.Time) ([]byte, error) {
	data, err := json.Marshal(Serialize(s, now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEncodeFailed, err)
	}
	return data, nil
}

// Deserialize runs the full load pipeline: parse, migrate, validate the
// structure, sanitize values, rebuild state and catch up growth that happened
// while the game was not running. Errors wrap ErrCorruptSave or
// ErrUnsupportedVersion.
func Deserialize(ctx context.Context, data []byte, cat *catalog.Catalog, now time.Time) (game.State, error) {
	rec, err := DecodeRecord(ctx, data, cat)
	if err != nil {
		return game.State{}, err
	}

	state := rec.State()
	catchUp(state.Farm.Tiles, now, cat)
	catchUp(state.Orchard.Tiles, now, cat)
	return state, nil
}

// DecodeRecord stops the pipeline after sanitizing, before growth is evaluated
func DecodeRecord(ctx context.Context, data []byte, cat *catalog.Catalog) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSave, ErrMsgParseFailed, err)
	}
	if raw == nil {
		return Record{}, fmt.Errorf("%w: %s", domain.ErrCorruptSave, ErrMsgNotAnObject)
	}

	from, _ := versionOf(raw)
	raw, err := Migrate(raw)
	if err != nil {
		return Record{}, err
	}
	log := logger.FromContext(ctx)
	if from < CurrentVersion {
		log.Info(LogMsgMigrated, "from", from, "to", CurrentVersion)
	}

	if err := schemas().ValidateValue(raw, validation.SaveSchema); err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSave, ErrMsgSchemaFailed, err)
	}

	rec, repairs := Sanitize(raw, cat)
	for _, r := range repairs {
		log.Warn(LogMsgSanitized, "field", r.Field, "reason", r.Reason)
	}
	return rec, nil
}

func catchUp(tiles []farm.Tile, now time.Time, timing farm.Timing) {
	for i := range tiles {
		if tiles[i].IsGrowing() {
			tiles[i].EvaluateGrowth(now, timing)
		}
	}
}

// EncodeText renders s as base64 text for manual backup
func EncodeText(s game.State, now time.Time) (string, error) {
	data, err := Encode(s, now)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeText reverses EncodeText, ignoring surrounding whitespace
func DecodeText(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSave, ErrMsgDecodeTextFailed, err)
	}
	return data, nil
}
