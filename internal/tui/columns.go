package tui

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/tui/datatable"
)

// dateLayout renders dates the way the dashboard lists them.
const dateLayout = "Jan 2, 2006"

// neverLabel is shown for a user who never logged in.
const neverLabel = "never"

// FormatDate formats t for a table cell. A nil or zero time renders as "never".
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return neverLabel
	}
	return t.Local().Format(dateLayout)
}

// compareTimes orders nil before any time.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// UserColumns returns the columns of the users list.
func UserColumns() []datatable.Column[entity.User] {
	return []datatable.Column[entity.User]{
		{
			ID:       "displayName",
			Header:   "Name",
			Accessor: func(u entity.User) string { return u.DisplayName },
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "email",
			Header:   "Email",
			Accessor: func(u entity.User) string { return u.Email },
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "lastLogin",
			Header:   "Last Login",
			Accessor: func(u entity.User) string { return FormatDate(u.LastLogin) },
			Compare: func(a, b entity.User) int {
				return compareTimes(a.LastLogin, b.LastLogin)
			},
			Sortable: true,
			CanHide:  true,
			Meta:     datatable.ColumnMeta{CellStyle: SubtleStyle},
		},
		{
			ID:       "createdAt",
			Header:   "Created at",
			Accessor: func(u entity.User) string { return FormatDate(&u.CreatedAt) },
			Compare: func(a, b entity.User) int {
				return a.CreatedAt.Compare(b.CreatedAt)
			},
			Sortable: true,
			CanHide:  true,
			Meta:     datatable.ColumnMeta{CellStyle: SubtleStyle},
		},
		{
			ID:       "roles",
			Header:   "Roles",
			Accessor: func(u entity.User) string { return strings.Join(u.RoleNames(), ", ") },
			CanHide:  true,
			Meta: datatable.ColumnMeta{
				CellStyle: lipgloss.NewStyle().Foreground(colorAccent),
			},
		},
	}
}

// RoleColumns returns the columns of the roles list.
func RoleColumns() []datatable.Column[entity.Role] {
	return []datatable.Column[entity.Role]{
		{
			ID:       "name",
			Header:   "Name",
			Accessor: func(r entity.Role) string { return r.Name },
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "users",
			Header:   "Users",
			Accessor: func(r entity.Role) string { return strconv.Itoa(len(r.Users)) },
			Compare: func(a, b entity.Role) int {
				return cmp.Compare(len(a.Users), len(b.Users))
			},
			Sortable: true,
			CanHide:  true,
		},
	}
}

// GeneticColumns returns the columns of the genetics list.
func GeneticColumns() []datatable.Column[entity.Genetic] {
	return []datatable.Column[entity.Genetic]{
		{
			ID:       "name",
			Header:   "Name",
			Accessor: func(g entity.Genetic) string { return g.Name },
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "flowerDays",
			Header:   "Flower Days",
			Accessor: func(g entity.Genetic) string { return strconv.Itoa(g.FlowerDays) },
			Cell: func(g entity.Genetic) string {
				return fmt.Sprintf("%d (%d wk)", g.FlowerDays, g.FlowerWeeks())
			},
			Compare: func(a, b entity.Genetic) int {
				return cmp.Compare(a.FlowerDays, b.FlowerDays)
			},
			Sortable: true,
			CanHide:  true,
			Meta:     datatable.ColumnMeta{Width: 16},
		},
	}
}

// PlantColumns returns the columns of the plants list.
func PlantColumns() []datatable.Column[entity.Plant] {
	return []datatable.Column[entity.Plant]{
		{
			ID:       "name",
			Header:   "Name",
			Accessor: func(p entity.Plant) string { return p.Name },
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "stage",
			Header:   "Stage",
			Accessor: func(p entity.Plant) string { return string(p.Stage) },
			Cell:     func(p entity.Plant) string { return p.Stage.Display() },
			Compare: func(a, b entity.Plant) int {
				return cmp.Compare(stageOrder(a.Stage), stageOrder(b.Stage))
			},
			Sortable: true,
			CanHide:  true,
		},
		{
			ID:       "genetic",
			Header:   "Genetic",
			Accessor: func(p entity.Plant) string { return p.GeneticName() },
			Sortable: true,
			CanHide:  true,
		},
	}
}

// stageOrder ranks a stage by lifecycle position; unknown stages sort last.
func stageOrder(s entity.PlantStage) int {
	for i, stage := range entity.AllStages() {
		if stage == s {
			return i
		}
	}
	return len(entity.AllStages())
}
