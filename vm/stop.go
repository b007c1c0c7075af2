package vm

import (
	"fmt"
	"io"
)

// Reason classifies the terminal events of a machine run. Every run ends in
// exactly one of these; there is no recovery inside the execution loop.
type Reason int

const (
	ReasonHalted Reason = iota
	ReasonOverflow
	ReasonIllegal
	ReasonNotImplemented
	ReasonCPUQuota
	ReasonOutOfPaper
)

// The operator messages, as printed on the original console. The Russian
// strings are the authentic ones; the English strings are the translations
// used with the english option.
var reasonText = map[Reason][2]string{
	ReasonHalted:         {"Останов машины", "Halted"},
	ReasonOverflow:       {"Аварийный останов", "Overflow"},
	ReasonIllegal:        {"Эту команду не знаю", "Illegal instruction"},
	ReasonNotImplemented: {"Устройство разбитое", "Not implemented"},
	ReasonCPUQuota:       {"Тайм-аут", "CPU quota exceeded"},
	ReasonOutOfPaper:     {"Бумага дошла - нужно ехать в Сибирь про новую", "Out of paper"},
}

// String returns the English reason text.
func (r Reason) String() string {
	return reasonText[r][1]
}

// Russian returns the Russian reason text.
func (r Reason) Russian() string {
	return reasonText[r][0]
}

// Stop describes why execution ended, together with the register state at
// the stop. IP is the address of the instruction that stopped the machine,
// not the next one.
type Stop struct {
	Reason Reason
	IP     int
	ACC    Word
	R1     Word
	R2     Word
}

// Report writes the two-line stop report. With english the messages and
// register labels are in English, otherwise the original Russian console
// text is used.
func (s *Stop) Report(w io.Writer, english bool) {
	if english {
		fmt.Fprintf(w, "Machine stopped -- %s\n", s.Reason)
		fmt.Fprintf(w, "IP:%04o ACC:%s R1:%s R2:%s\n", s.IP, s.ACC, s.R1, s.R2)
	} else {
		fmt.Fprintf(w, "Машина остановлена -- %s\n", s.Reason.Russian())
		fmt.Fprintf(w, "СчАК:%04o См:%s Р1:%s Р2:%s\n", s.IP, s.ACC, s.R1, s.R2)
	}
}
