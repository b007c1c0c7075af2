// Package debugger provides an interactive front panel for the emulator: a
// command interpreter driving single steps, and a terminal UI around it.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/karelp/minsk-emulator/vm"
)

// Debugger drives a machine one instruction at a time.
type Debugger struct {
	Machine *vm.Machine

	// Last command, repeated on empty input.
	LastCommand string

	// Output buffer for command results.
	Output strings.Builder
}

// NewDebugger creates a debugger around machine.
func NewDebugger(machine *vm.Machine) *Debugger {
	return &Debugger{Machine: machine}
}

// GetOutput returns and does not clear the accumulated command output.
func (d *Debugger) GetOutput() string {
	return d.Output.String()
}

// Printf writes formatted text to the output buffer.
func (d *Debugger) Printf(format string, args ...any) {
	fmt.Fprintf(&d.Output, format, args...)
}

// ExecuteCommand processes and executes a debugger command.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine == "" {
		return nil
	}
	d.LastCommand = cmdLine

	fields := strings.Fields(cmdLine)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "step", "s":
		return d.cmdStep(args)
	case "run", "continue", "c":
		return d.cmdRun()
	case "regs", "r":
		d.printRegisters()
		return nil
	case "mem", "m":
		return d.cmdMem(args)
	case "help", "h", "?":
		d.printHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", cmd)
	}
}

func (d *Debugger) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid step count: %s", args[0])
		}
		n = v
	}
	for i := 0; i < n; i++ {
		if st := d.Machine.Step(); st != nil {
			d.Printf("Machine stopped -- %s\n", st.Reason)
			return nil
		}
	}
	d.printRegisters()
	return nil
}

func (d *Debugger) cmdRun() error {
	st := d.Machine.Run()
	d.Printf("Machine stopped -- %s\n", st.Reason)
	d.printRegisters()
	return nil
}

func (d *Debugger) cmdMem(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mem <octal addr> [count]")
	}
	addr, err := ParseAddress(args[0])
	if err != nil {
		return err
	}
	if addr.Bank >= d.Machine.Memory.Banks() {
		return fmt.Errorf("no bank %d on this machine", addr.Bank)
	}
	count := 8
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid count: %s", args[1])
		}
		count = v
	}
	for i := 0; i < count; i++ {
		a := vm.Addr{Bank: addr.Bank, Offset: (addr.Offset + i) & vm.AddrMask}
		d.Printf("%s  %s\n", a, d.Machine.Memory.Dump(a))
	}
	return nil
}

func (d *Debugger) printRegisters() {
	c := d.Machine.CPU
	d.Printf("IP:%04o ACC:%s R1:%s R2:%s\n", c.IP, c.ACC, c.R1, c.R2)
	d.Printf("next: %s\n", FormatIns(d.Machine.Memory.Fetch(c.IP)))
}

func (d *Debugger) printHelp() {
	d.Printf(`Commands:
  step [n]        execute n instructions (default 1)
  run             execute until the machine stops
  regs            show registers and the next instruction
  mem <addr> [n]  dump n words starting at the octal address
  help            this text
`)
}

// ParseAddress parses an octal address of the form "addr" or "bank:addr".
func ParseAddress(s string) (vm.Addr, error) {
	var a vm.Addr
	if bank, rest, ok := strings.Cut(s, ":"); ok {
		b, err := strconv.ParseUint(bank, 8, 1)
		if err != nil {
			return a, fmt.Errorf("invalid bank: %s", bank)
		}
		a.Bank = int(b)
		s = rest
	}
	off, err := strconv.ParseUint(s, 8, 64)
	if err != nil || off > vm.AddrMask {
		return a, fmt.Errorf("invalid address: %s", s)
	}
	a.Offset = int(off)
	return a, nil
}

// FormatIns renders an instruction word the way the trace does: sign,
// opcode and index digits, and the two operand addresses.
func FormatIns(w vm.Word) string {
	sign := '+'
	if w.Sign() < 0 {
		sign = '-'
	}
	return fmt.Sprintf("%c%02o %02o %04o %04o",
		sign, uint64(w>>30)&0o77, uint64(w>>24)&0o77,
		uint64(w>>12)&0o7777, uint64(w)&0o7777)
}
