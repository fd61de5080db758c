package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rosterhq/roster/internal/task"
)

// ANSI color codes. Emptied at startup when stdout is not a terminal so
// piped output stays clean.
var (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

func init() {
	fd := os.Stdout.Fd()
	if os.Getenv("NO_COLOR") != "" || (!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)) {
		colorReset = ""
		colorBold = ""
		colorDim = ""
		colorRed = ""
		colorGreen = ""
		colorYellow = ""
		colorBlue = ""
		colorMagenta = ""
		colorCyan = ""
		colorWhite = ""
	}
}

func priorityColor(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return colorRed + colorBold
	case task.PriorityMedium:
		return colorYellow
	case task.PriorityLow:
		return colorDim
	default:
		return ""
	}
}

func statusColor(s task.Status) string {
	switch s {
	case task.StatusBacklog:
		return colorWhite
	case task.StatusPending:
		return colorBlue
	case task.StatusCompleted:
		return colorGreen
	case task.StatusArchived:
		return colorDim
	default:
		return ""
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
