package entity

import (
	"fmt"
	"strings"
)

// PlantStage is the lifecycle stage of a plant.
type PlantStage string

// Plant stages in lifecycle order.
const (
	StageSeedling   PlantStage = "SEEDLING"
	StageVegetative PlantStage = "VEGETATIVE"
	StageFlowering  PlantStage = "FLOWERING"
	StageHarvest    PlantStage = "HARVEST"
	StageDried      PlantStage = "DRIED"
	StageCured      PlantStage = "CURED"
	StagePackaged   PlantStage = "PACKAGED"
	StageSold       PlantStage = "SOLD"
	StageDestroyed  PlantStage = "DESTROYED"
)

//nolint:gochecknoglobals // Static lookup table.
var stageIcons = map[PlantStage]string{
	StageSeedling:   "🌱",
	StageVegetative: "🌿",
	StageFlowering:  "🌸",
	StageHarvest:    "✂",
	StageDried:      "🔥",
	StageCured:      "🌡",
	StagePackaged:   "🎒",
	StageSold:       "🪙",
	StageDestroyed:  "✖",
}

// AllStages returns every stage in lifecycle order.
func AllStages() []PlantStage {
	return []PlantStage{
		StageSeedling, StageVegetative, StageFlowering, StageHarvest, StageDried,
		StageCured, StagePackaged, StageSold, StageDestroyed,
	}
}

// ParseStage parses a stage name case-insensitively.
func ParseStage(s string) (PlantStage, error) {
	stage := PlantStage(strings.ToUpper(strings.TrimSpace(s)))
	if !stage.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
	}
	return stage, nil
}

// Valid reports whether s is a known stage.
func (s PlantStage) Valid() bool {
	_, ok := stageIcons[s]
	return ok
}

// Icon returns the terminal icon of the stage, or an empty string for an
// unknown stage.
func (s PlantStage) Icon() string {
	return stageIcons[s]
}

// Display returns the icon followed by the stage name.
func (s PlantStage) Display() string {
	if icon := s.Icon(); icon != "" {
		return icon + " " + string(s)
	}
	return string(s)
}
