// Package datatable provides a generic, searchable table view for Bubble Tea TUI applications.
//
// A Model renders any homogeneous slice of rows through caller-supplied column
// definitions. Key features:
//   - Debounced global fuzzy filter ranked match-sorter style, with the fuzzy tier
//     scored by fzf
//   - Single-column stable sort toggled from the header
//   - Column visibility menu for columns that may be hidden
//   - Fixed-size pagination with first/previous/next/last controls that are disabled
//     when there is nowhere to go
//   - Caller-provided row actions and an "Add" affordance delivered as messages
//
// All displayed rows come from Apply, a pure function of the row snapshot, the
// columns, and the current State. Nothing is mutated in place; every state change
// re-derives the page.
package datatable
