package progress

import (
	"fmt"

	"github.com/fatih/color"
)

// formatCounter returns the [N/Total] step counter string
func formatCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildStepMessage constructs the running message for a step
func buildStepMessage(step StepInfo) string {
	action := step.Action
	if action == "" {
		action = "Running"
	}
	return fmt.Sprintf("%s %s %s", formatCounter(step.Number, step.Total), action, step.Name)
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	return paint(symbols.Checkmark, color.FgGreen, supportsColor)
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	return paint(symbols.Failure, color.FgRed, supportsColor)
}

// skipMark returns the appropriate skip symbol
func skipMark(symbols ProgressSymbols, supportsColor bool) string {
	return paint(symbols.Skip, color.FgYellow, supportsColor)
}

func paint(s string, attr color.Attribute, enabled bool) string {
	if !enabled {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
