package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/karelp/minsk-emulator/vm"
)

// TUI is the terminal front panel: register and memory panes, the printer
// output, and a command box driving the debugger.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	MainLayout *tview.Flex

	RegisterView *tview.TextView
	MemoryView   *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	// First address shown in the memory pane.
	MemoryAddress vm.Addr
}

// NewTUI creates a front panel around debugger. The machine's printer
// output is routed into the output pane.
func NewTUI(debugger *Debugger) *TUI {
	tui := &TUI{
		Debugger: debugger,
		App:      tview.NewApplication(),
	}

	tui.initializeViews()
	tui.buildLayout()
	tui.setupKeyBindings()

	debugger.Machine.SetOutput(tview.ANSIWriter(tui.OutputView))

	return tui
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.OutputView.SetBorder(true).SetTitle(" Printer ")

	t.CommandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 6, 0, false).
		AddItem(t.MemoryView, 0, 1, false)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 1, false).
		AddItem(t.OutputView, 0, 2, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("run")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		t.executeCommand(cmd)
		t.CommandInput.SetText("")
	}
}

func (t *TUI) executeCommand(cmd string) {
	if strings.TrimSpace(cmd) == "quit" || strings.TrimSpace(cmd) == "q" {
		t.App.Stop()
		return
	}

	t.Debugger.Output.Reset()
	err := t.Debugger.ExecuteCommand(cmd)

	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if output := t.Debugger.GetOutput(); output != "" {
		t.WriteOutput(output)
	}

	t.RefreshAll()
}

// WriteOutput writes to the output view.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll refreshes all panes.
func (t *TUI) RefreshAll() {
	t.UpdateRegisterView()
	t.UpdateMemoryView()
	t.App.Draw()
}

// UpdateRegisterView redraws the register pane.
func (t *TUI) UpdateRegisterView() {
	t.RegisterView.Clear()

	c := t.Debugger.Machine.CPU
	var lines []string
	lines = append(lines, fmt.Sprintf("IP : [yellow]%04o[white]", c.IP))
	lines = append(lines, fmt.Sprintf("ACC: %s", c.ACC))
	lines = append(lines, fmt.Sprintf("R1 : %s", c.R1))
	lines = append(lines, fmt.Sprintf("R2 : %s", c.R2))

	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

// UpdateMemoryView redraws the memory pane around the current address.
func (t *TUI) UpdateMemoryView() {
	t.MemoryView.Clear()

	m := t.Debugger.Machine
	base := t.MemoryAddress
	var lines []string
	for i := 0; i < 16; i++ {
		a := vm.Addr{Bank: base.Bank, Offset: (base.Offset + i) & vm.AddrMask}
		marker := "  "
		color := "white"
		if a.Bank == 0 && a.Offset == m.CPU.IP {
			marker = "->"
			color = "yellow"
		}
		w := m.Memory.Dump(a)
		lines = append(lines, fmt.Sprintf("[%s]%s %s  %s  %s[white]",
			color, marker, a, w, FormatIns(w)))
	}

	t.MemoryView.SetText(strings.Join(lines, "\n"))
}

// SetMemoryAddress moves the memory pane to a.
func (t *TUI) SetMemoryAddress(a vm.Addr) {
	t.MemoryAddress = a
	t.UpdateMemoryView()
}

// Run starts the front panel.
func (t *TUI) Run() error {
	t.MemoryAddress = vm.Addr{Bank: 0, Offset: t.Debugger.Machine.CPU.IP}
	t.RefreshAll()

	t.WriteOutput("[green]Minsk-2 front panel[white]\n")
	t.WriteOutput("F11 steps, F5 runs, Ctrl-C quits. Type 'help' for commands.\n\n")

	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}

// Stop stops the front panel.
func (t *TUI) Stop() {
	t.App.Stop()
}
