package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/entity"
)

// RenderOverview renders a boxed summary of the backend collections: one
// count per entity and a breakdown of plants by lifecycle stage. The width
// parameter controls the total box width.
func RenderOverview(ov api.Overview, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("CULTIVATION OVERVIEW"))
	content.WriteString("\n")

	for i, kind := range entity.AllKinds() {
		if i > 0 {
			content.WriteString("    ")
		}
		content.WriteString(LabelStyle.Render(kind.Label() + "s: "))
		content.WriteString(ValueStyle.Render(strconv.Itoa(ov.Count(kind))))
	}
	content.WriteString("\n")

	if ov.Plants == 0 {
		content.WriteString(InfoStyle.Render("No plants yet."))
	} else {
		// Lifecycle order, skipping empty stages.
		var parts []string
		for _, stage := range entity.AllStages() {
			if n := ov.PlantsByStage[stage]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s: %d", stage.Display(), n))
			}
		}
		content.WriteString(LabelStyle.Render(strings.Join(parts, "  ")))
	}

	if width <= borderPadding {
		width = defaultWidth
	}
	return BoxStyle.Width(width - borderPadding).Render(content.String())
}
