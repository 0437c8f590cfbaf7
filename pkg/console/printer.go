package console

import (
	"fmt"
	"io"

	"github.com/cbodonnell/monopoly/pkg/game/types"
)

// Printer writes game events to a terminal.
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter creates a Printer. Squares passed through are only printed when verbose.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{
		out:     out,
		verbose: verbose,
	}
}

func (p *Printer) Notify(event types.Event) {
	switch event.Type {
	case types.EventTypePassedSquare:
		if p.verbose {
			fmt.Fprintln(p.out, event.Message)
		}
	case types.EventTypeRoundStarted:
		fmt.Fprintf(p.out, "\n%s\n", event.Message)
	case types.EventTypeTurnStarted:
		fmt.Fprintf(p.out, "\n--- %s ---\n", event.Message)
	case types.EventTypeGameOver:
		fmt.Fprintf(p.out, "\n*** %s ***\n", event.Message)
	default:
		fmt.Fprintln(p.out, event.Message)
	}
}
