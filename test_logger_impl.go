package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/reqres-qa/reqres-contract-tests/framework"
	"github.com/reqres-qa/reqres-contract-tests/framework/ldtest"

	"github.com/fatih/color"
)

var (
	passedColor  = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed, color.Bold)
	abortedColor = color.New(color.FgMagenta, color.Bold)
	skippedColor = color.New(color.FgYellow)
)

func statusLabel(status ldtest.TestStatus) string {
	switch status {
	case ldtest.StatusFailed:
		return failedColor.Sprint("FAILED")
	case ldtest.StatusAborted:
		return abortedColor.Sprint("ABORTED")
	case ldtest.StatusSkipped:
		return skippedColor.Sprint("SKIPPED")
	default:
		return passedColor.Sprint("PASSED")
	}
}

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id ldtest.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id ldtest.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id ldtest.TestID, status ldtest.TestStatus, debugOutput framework.CapturedOutput) {
	failed := status != ldtest.StatusPassed
	if failed {
		fmt.Fprintf(c.Out, "  %s: %s\n", statusLabel(status), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id ldtest.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", statusLabel(ldtest.StatusSkipped), id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", statusLabel(ldtest.StatusSkipped), id, reason)
	}
}

// PrintResults writes the summary shown at the end of a run.
func PrintResults(out io.Writer, results ldtest.Results) {
	fmt.Fprintf(out, "%d passed, %d failed, %d aborted, %d skipped\n",
		results.Count(ldtest.StatusPassed),
		results.Count(ldtest.StatusFailed),
		results.Count(ldtest.StatusAborted),
		results.Count(ldtest.StatusSkipped),
	)
	if results.OK() {
		fmt.Fprintln(out, "All tests passed")
		return
	}
	fmt.Fprintln(out, "Failed tests:")
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s %s\n", statusLabel(f.Status), f.TestID)
	}
}
