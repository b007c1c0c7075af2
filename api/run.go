// Package api fronts the emulator core with a small daemon: an HTTP run
// endpoint, a WebSocket variant that streams printer output, and the
// classic raw-TCP museum mode. Every request gets a fresh single-threaded
// machine; concurrency never enters the core.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/karelp/minsk-emulator/config"
	"github.com/karelp/minsk-emulator/parser"
	"github.com/karelp/minsk-emulator/vm"
)

// Limits carries the per-session machine settings of the daemon.
type Limits struct {
	CPUQuota   int
	PrintQuota int
	Upgrade    bool
	English    bool
}

// limitsFrom extracts the session limits from the daemon configuration.
func limitsFrom(cfg *config.Config) Limits {
	return Limits{
		CPUQuota:   cfg.Daemon.SessionCPU,
		PrintQuota: cfg.Daemon.SessionPrint,
		Upgrade:    cfg.Machine.Upgrade,
		English:    cfg.Execution.English,
	}
}

// runProgram loads program into a fresh machine and runs it to the stop,
// writing printer output and the final report to out. It returns the stop,
// or nil with a non-nil error when the program does not parse.
func runProgram(program string, lim Limits, out io.Writer) (*vm.Stop, error) {
	m := vm.New(vm.Options{
		Upgrade:    lim.Upgrade,
		CPUQuota:   lim.CPUQuota,
		PrintQuota: lim.PrintQuota,
		Output:     out,
	})
	if err := parser.Parse(strings.NewReader(program), m.Memory); err != nil {
		var pe *parser.Error
		if errors.As(err, &pe) {
			fmt.Fprintln(out, pe.Localized(lim.English))
		} else {
			fmt.Fprintln(out, err)
		}
		return nil, err
	}
	st := m.Run()
	st.Report(out, lim.English)
	return st, nil
}

// runToString is runProgram with the transcript captured in memory.
func runToString(program string, lim Limits) (string, *vm.Stop, error) {
	var buf bytes.Buffer
	st, err := runProgram(program, lim, &buf)
	return buf.String(), st, err
}
