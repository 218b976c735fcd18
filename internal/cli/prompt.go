package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cultivar-dev/cultivar/internal/entity"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// NonInteractive is true when no terminal was available to ask
	NonInteractive bool
	// Cancelled is true if reading the answer failed
	Cancelled bool
}

// ConfirmDelete asks the user to confirm deleting the record id of kind.
// When reader is a file that is not a terminal it returns immediately with
// NonInteractive set.
//
// The prompt defaults to "No" when the user presses Enter without input.
func ConfirmDelete(writer io.Writer, reader io.Reader, kind entity.Kind, id string) PromptResult {
	if f, ok := reader.(*os.File); ok && !isTerminal(f) {
		return PromptResult{NonInteractive: true}
	}

	fmt.Fprintf(writer, "? Delete %s %q? This cannot be undone. [y/N] ", kind, id)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}
