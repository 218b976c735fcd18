package datatable

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

type testPlant struct {
	Name    string
	Stage   string
	Genetic string
}

func testColumns() []Column[testPlant] {
	return []Column[testPlant]{
		{
			ID:       "name",
			Header:   "Name",
			Accessor: func(p testPlant) string { return p.Name },
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "stage",
			Header:   "Stage",
			Accessor: func(p testPlant) string { return p.Stage },
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "genetic",
			Header:   "Genetic",
			Accessor: func(p testPlant) string { return p.Genetic },
			Sortable: true,
			CanHide:  true,
		},
	}
}

// numberedPlants returns n plants named plant-01..plant-n in order.
func numberedPlants(n int) []testPlant {
	plants := make([]testPlant, n)
	for i := range plants {
		plants[i] = testPlant{
			Name:    fmt.Sprintf("plant-%02d", i+1),
			Stage:   []string{"seedling", "vegetative", "flowering"}[i%3],
			Genetic: []string{"Amnesia Haze", "Blue Dream", "Northern Lights"}[i%3],
		}
	}
	return plants
}

func names(rows []Row[testPlant]) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Original.Name
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model[testPlant], msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

// headerLine returns the ANSI-stripped header row of the rendered table: the
// line above the rule that separates the header from the body.
func headerLine(view string) string {
	lines := strings.Split(ansi.Strip(view), "\n")
	for i := 1; i < len(lines); i++ {
		rule := strings.TrimSpace(lines[i])
		if rule != "" && strings.Trim(rule, "─") == "" {
			return lines[i-1]
		}
	}
	return ""
}
