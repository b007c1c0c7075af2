package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karelp/minsk-emulator/vm"
)

func TestTrace_InstructionLevel(t *testing.T) {
	var trace bytes.Buffer
	m, _ := newTestMachine(vm.Options{TraceLevel: vm.TraceInstructions, TraceWriter: &trace})
	load(m, 0o0050, ins(0o100, 0, 0o0100, 0o0200))

	m.Run()

	// The halt opcode's high bit is the word's sign bit, so the opcode
	// digits show 00 with a minus sign, just like on the console.
	assert.Equal(t, "@0050  -00 00 0:0100 0:0200\n", trace.String())
}

func TestTrace_RegisterLevel(t *testing.T) {
	var trace bytes.Buffer
	m, _ := newTestMachine(vm.Options{TraceLevel: vm.TraceRegisters, TraceWriter: &trace})
	load(m, 0o0050,
		ins(0o110, 0, 0o0100, 0o0200),
		ins(0o100, 0, 0, 0),
	)
	load(m, 0o0100, vm.FromInt(5))

	m.Run()

	lines := strings.Split(strings.TrimSuffix(trace.String(), "\n"), "\n")
	require.Len(t, lines, 3, "two instruction lines plus one register line")
	assert.Equal(t, "\tACC:+000000000005 R1:+000000000005 R2:+000000000000", lines[1])
}

func TestTrace_MemoryLevel(t *testing.T) {
	var trace bytes.Buffer
	m, _ := newTestMachine(vm.Options{TraceLevel: vm.TraceMemory, TraceWriter: &trace})
	load(m, 0o0050, ins(0o110, 0, 0o0100, 0o0200), ins(0o100, 0, 0, 0))
	load(m, 0o0100, vm.FromInt(5))

	trace.Reset() // drop the load's own writes
	m.Run()

	out := trace.String()
	assert.Contains(t, out, "\tRD 0:0100 = +000000000005")
	assert.Contains(t, out, "\tWR 0:0200 = +000000000005")
}

func TestStop_Report(t *testing.T) {
	st := &vm.Stop{
		Reason: vm.ReasonHalted,
		IP:     0o0051,
		ACC:    vm.FromInt(8),
		R1:     vm.FromInt(5),
	}

	t.Run("english", func(t *testing.T) {
		var buf bytes.Buffer
		st.Report(&buf, true)
		assert.Equal(t,
			"Machine stopped -- Halted\n"+
				"IP:0051 ACC:+000000000010 R1:+000000000005 R2:+000000000000\n",
			buf.String())
	})

	t.Run("russian", func(t *testing.T) {
		var buf bytes.Buffer
		st.Report(&buf, false)
		assert.Equal(t,
			"Машина остановлена -- Останов машины\n"+
				"СчАК:0051 См:+000000000010 Р1:+000000000005 Р2:+000000000000\n",
			buf.String())
	})
}

func TestReason_Strings(t *testing.T) {
	assert.Equal(t, "Overflow", vm.ReasonOverflow.String())
	assert.Equal(t, "Out of paper", vm.ReasonOutOfPaper.String())
	assert.Equal(t, "Тайм-аут", vm.ReasonCPUQuota.Russian())
}
