package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/imgpipe/imgpipe/internal/engine"
)

// fallbackWidth is used when the terminal width cannot be determined.
const fallbackWidth = 80

// progressWidth returns the terminal width to size the progress bar to.
func progressWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 20 {
		return fallbackWidth
	}
	return width
}

// renderProgress redraws the progress bar in place.
func renderProgress(w io.Writer, width int, snap engine.ProgressSnapshot) {
	// Leave room for the percentage and counters after the bar.
	barWidth := width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(snap.PercentComplete / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	_, _ = fmt.Fprintf(w, "\r[%s%s] %3.0f%% (%d/%d)",
		strings.Repeat("#", filled),
		strings.Repeat("-", barWidth-filled),
		snap.PercentComplete,
		snap.ProcessedItems,
		snap.TotalItems)
}
