package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of progress indicators
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	current      *StepInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewProgressDisplay creates a progress display writing results to out
func NewProgressDisplay(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	if out == nil {
		out = os.Stdout
	}
	return &ProgressDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// StartStep begins displaying progress for a step
func (p *ProgressDisplay) StartStep(step StepInfo) error {
	if err := step.Validate(); err != nil {
		return err
	}

	p.current = &step
	msg := buildStepMessage(step)

	if p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		p.spinner.Writer = os.Stderr
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// CompleteStep stops the spinner and displays completion status
func (p *ProgressDisplay) CompleteStep(step StepInfo) {
	p.StopSpinner()
	mark := checkmark(p.symbols, p.capabilities.SupportsColor)
	fmt.Fprintf(p.out, "%s %s %s done\n", mark, formatCounter(step.Number, step.Total), step.Name)
	p.current = nil
}

// FailStep stops the spinner and displays failure status
func (p *ProgressDisplay) FailStep(step StepInfo, err error) {
	p.StopSpinner()
	mark := failureMark(p.symbols, p.capabilities.SupportsColor)
	fmt.Fprintf(p.out, "%s %s %s failed: %v\n", mark, formatCounter(step.Number, step.Total), step.Name, err)
	p.current = nil
}

// SkipStep displays a skipped step with its reason
func (p *ProgressDisplay) SkipStep(step StepInfo, reason string) {
	p.StopSpinner()
	mark := skipMark(p.symbols, p.capabilities.SupportsColor)
	fmt.Fprintf(p.out, "%s %s %s skipped (%s)\n", mark, formatCounter(step.Number, step.Total), step.Name, reason)
	p.current = nil
}

// StopSpinner stops the spinner without showing completion/failure
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
