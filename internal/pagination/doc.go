// Package pagination provides shared paging, sorting, and sort-expression parsing.
//
// This package contains the logic used by both the interactive list view and the
// non-interactive CLI output, including:
//   - Params: CLI flag values (page, sort expression, query) and their validation
//   - Meta: page counts and previous/next availability for a filtered result
//   - SortStable: a stable, copy-returning sort whose descending order keeps ties
//     in input order
//
// Page indexes are 0-based internally. The CLI accepts 1-based page numbers and
// converts them at the edge.
package pagination
