package outwriter

import (
	"os"

	"github.com/kaihendry/setupdeps/internal/contract"
	"golang.org/x/term"
)

// getMaxTableErrorWidth calculates the maximum width for the error column in
// the history table based on terminal width.
func getMaxTableErrorWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// ID + Started + Duration + Ref + Source + Status with borders/padding
	baseWidth := 75

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 80 {
		return 80
	}
	return available
}
