package vm

import (
	"io"
	"os"
)

// Options configures a machine instance. The zero value is a base Minsk-2
// with unlimited quotas, silent trace, and output on stdout.
type Options struct {
	// Upgrade turns the machine into a Minsk-22: a second memory bank and
	// the address-extension field of the instruction word become available.
	Upgrade bool

	// SetPassword pre-fills memory with Halt words and plants the hidden
	// password words.
	SetPassword bool

	// CPUQuota limits the number of executed instructions; non-positive
	// means unlimited.
	CPUQuota int

	// PrintQuota limits the number of printed lines; non-positive means
	// unlimited.
	PrintQuota int

	// TraceLevel selects how much of the execution is logged to
	// TraceWriter (see the Trace constants).
	TraceLevel int

	// TraceWriter receives the trace; defaults to Output.
	TraceWriter io.Writer

	// Output receives printer output; defaults to os.Stdout.
	Output io.Writer
}

// Machine is a complete Minsk-2 (or Minsk-22): register file, core memory,
// line printer, and the fetch-decode-execute engine. It is strictly
// single-threaded; a run owns all of its state until it stops.
type Machine struct {
	CPU     *CPU
	Memory  *Memory
	Printer *Printer

	Output io.Writer

	trace    *Trace
	cpuQuota int
	stopped  *Stop
}

// New builds a machine from opts with cleared registers and IP at the
// standard start location.
func New(opts Options) *Machine {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	tw := opts.TraceWriter
	if tw == nil {
		tw = out
	}
	banks := 1
	if opts.Upgrade {
		banks = 2
	}
	m := &Machine{
		CPU:      NewCPU(),
		Memory:   NewMemory(banks, opts.SetPassword),
		Printer:  NewPrinter(out, opts.PrintQuota),
		Output:   out,
		trace:    &Trace{Level: opts.TraceLevel, Writer: tw},
		cpuQuota: opts.CPUQuota,
	}
	m.Memory.trace = m.trace
	return m
}

// SetOutput redirects printer output to w, e.g. into a front-panel pane.
func (m *Machine) SetOutput(w io.Writer) {
	m.Output = w
	m.Printer.out = w
}

// Stopped returns the stop that ended execution, or nil while the machine
// can still run.
func (m *Machine) Stopped() *Stop {
	return m.stopped
}

// Run executes instructions until the machine stops.
func (m *Machine) Run() *Stop {
	for {
		if st := m.Step(); st != nil {
			return st
		}
	}
}

// Step executes one instruction. It returns nil while the machine keeps
// running and the terminal Stop once it halts or traps; further calls
// return the same stop.
func (m *Machine) Step() *Stop {
	if m.stopped != nil {
		return m.stopped
	}
	c := m.CPU
	c.R2 = c.ACC
	c.PrevIP = c.IP
	w := m.Memory.Fetch(c.IP)
	c.IR = w

	op := int(w>>30) & 0o177
	ax := int(w>>28) & 3
	ix := int(w>>24) & 0o17
	x := Addr{Bank: ax >> 1, Offset: int(w>>12) & AddrMask}
	y := Addr{Bank: ax & 1, Offset: int(w) & AddrMask}
	m.trace.Instruction(c.IP, w, x, y)

	// Index register ix is a word in bank 0 whose halves offset both
	// operand addresses. The Loop opcode uses the field as its counter
	// address instead, so indexing is suppressed there.
	xi, yi := x, y
	if ix != 0 && op != opLoop {
		i := m.Memory.Read(Addr{Bank: 0, Offset: ix})
		xi.Offset = (xi.Offset + int(i>>12)&AddrMask) & AddrMask
		yi.Offset = (yi.Offset + int(i)&AddrMask) & AddrMask
		m.trace.Indexing(xi, yi)
	}

	c.IP = (c.IP + 1) & AddrMask

	if m.cpuQuota > 0 {
		m.cpuQuota--
		if m.cpuQuota == 0 {
			return m.stop(ReasonCPUQuota)
		}
	}

	// The address-extension bits only exist on the Minsk-22.
	if ax != 0 && m.Memory.Banks() == 1 {
		return m.illegal()
	}

	if st := m.execute(op, ix, x, y, xi, yi); st != nil {
		return st
	}
	m.trace.Registers(c)
	return nil
}

func (m *Machine) stop(r Reason) *Stop {
	m.stopped = &Stop{
		Reason: r,
		IP:     m.CPU.PrevIP,
		ACC:    m.CPU.ACC,
		R1:     m.CPU.R1,
		R2:     m.CPU.R2,
	}
	return m.stopped
}

// Illegal and not-implemented traps leave the offending instruction in the
// accumulator as a debugging aid.
func (m *Machine) illegal() *Stop {
	m.CPU.ACC = m.CPU.IR
	return m.stop(ReasonIllegal)
}

func (m *Machine) notImplemented() *Stop {
	m.CPU.ACC = m.CPU.IR
	return m.stop(ReasonNotImplemented)
}
