package entity_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivar-dev/cultivar/internal/entity"
)

func TestPlant_DecodesAPIShape(t *testing.T) {
	body := `{
		"id": "p1",
		"name": "Purple Haze #3",
		"geneticId": "g1",
		"stage": "FLOWERING",
		"createdAt": "2024-03-01T10:00:00Z",
		"updatedAt": "2024-03-02T10:00:00Z",
		"genetic": {"id": "g1", "name": "Purple Haze", "flowerDays": 63}
	}`

	var p entity.Plant
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, "Purple Haze", p.GeneticName())
	assert.Equal(t, entity.StageFlowering, p.Stage)
	assert.Equal(t, 9, p.Genetic.FlowerWeeks())
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt)
}

func TestPlant_GeneticNameFallsBackToID(t *testing.T) {
	assert.Equal(t, "g1", entity.Plant{GeneticID: "g1"}.GeneticName())
}

func TestUser_PasswordNotEmitted(t *testing.T) {
	out, err := json.Marshal(entity.User{ID: "u1", DisplayName: "Ann"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "password")
	assert.NotContains(t, string(out), "lastLogin")
}

func TestUser_RoleNames(t *testing.T) {
	u := entity.User{Roles: []entity.UsersInRoles{
		{RoleID: 1, Role: &entity.Role{ID: 1, Name: "admin"}},
		{RoleID: 2},
		{RoleID: 3, Role: &entity.Role{ID: 3, Name: "grower"}},
	}}
	assert.Equal(t, []string{"admin", "grower"}, u.RoleNames())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "genetics", entity.KindGenetic.Path())
	assert.Equal(t, "Genetic", entity.KindGenetic.Label())
	assert.Len(t, entity.AllKinds(), 4)
}

func TestPlantStage(t *testing.T) {
	tests := []struct {
		input   string
		want    entity.PlantStage
		wantErr bool
	}{
		{"seedling", entity.StageSeedling, false},
		{" Flowering ", entity.StageFlowering, false},
		{"DESTROYED", entity.StageDestroyed, false},
		{"blooming", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := entity.ParseStage(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, entity.ErrInvalidStage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, stage := range entity.AllStages() {
		assert.NotEmpty(t, stage.Icon(), stage)
	}
	assert.Equal(t, "🌱 SEEDLING", entity.StageSeedling.Display())
	assert.Equal(t, "UNKNOWN", entity.PlantStage("UNKNOWN").Display())
}

func TestNewUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    entity.NewUser
		wantErr []error
	}{
		{
			name: "valid",
			user: entity.NewUser{DisplayName: "Ann", Email: "ann@example.com", Password: "correct-horse"},
		},
		{
			name:    "short display name",
			user:    entity.NewUser{DisplayName: "A", Email: "ann@example.com", Password: "correct-horse"},
			wantErr: []error{entity.ErrDisplayNameTooShort},
		},
		{
			name:    "named address rejected",
			user:    entity.NewUser{DisplayName: "Ann", Email: "Ann <ann@example.com>", Password: "correct-horse"},
			wantErr: []error{entity.ErrInvalidEmail},
		},
		{
			name: "everything wrong",
			user: entity.NewUser{DisplayName: " ", Email: "nope", Password: "short"},
			wantErr: []error{
				entity.ErrDisplayNameTooShort, entity.ErrInvalidEmail, entity.ErrPasswordTooShort,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestNewRole_Validate(t *testing.T) {
	assert.NoError(t, entity.NewRole{Name: "qa"}.Validate())
	assert.ErrorIs(t, entity.NewRole{Name: "q"}.Validate(), entity.ErrRoleNameTooShort)
}

func TestNewGenetic_Validate(t *testing.T) {
	assert.NoError(t, entity.NewGenetic{Name: "Blue Dream", FlowerDays: 63}.Validate())

	err := entity.NewGenetic{}.Validate()
	assert.ErrorIs(t, err, entity.ErrNameRequired)
	assert.ErrorIs(t, err, entity.ErrInvalidFlowerDays)
}

func TestNewPlant_Validate(t *testing.T) {
	assert.NoError(t, entity.NewPlant{
		Name: "Blue Dream #1", GeneticID: "6f1c2a4e-8d3b-4a5f-9c7e-1b2d3e4f5a6b",
	}.Validate())

	err := entity.NewPlant{Name: "x", GeneticID: "not-a-uuid"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidID))
	assert.Contains(t, err.Error(), "geneticId")
}
