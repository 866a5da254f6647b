package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Grid(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		grid    string
		wantErr bool
	}{
		{"farm", "farm", false},
		{"orchard", "orchard", false},
		{"empty", "", true},
		{"unknown", "barn", true},
		{"case sensitive", "Farm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(SelectRequest{Grid: tt.grid, SpeciesID: "corn"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_SpeciesID(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"lowercase", "corn", false},
		{"camel case", "worldTree", false},
		{"with dash", "dragon-fruit", false},
		{"empty allowed without required", "", false},
		{"punctuation", "corn!", true},
		{"space", "sweet corn", true},
		{"too long", "abcdefghijklmnopqrstuvwxyz0123456789", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(PlantRequest{Index: index(0), SpeciesID: tt.id})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(RecoverRequest{Option: "nope"})
	fields := FormatValidationError(err)
	assert.Equal(t, "Must be one of: restore_backup reset discard", fields["option"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("x")))
}
