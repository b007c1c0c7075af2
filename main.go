package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karelp/minsk-emulator/api"
	"github.com/karelp/minsk-emulator/config"
	"github.com/karelp/minsk-emulator/debugger"
	"github.com/karelp/minsk-emulator/parser"
	"github.com/karelp/minsk-emulator/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "minsk: %v\n", err)
		os.Exit(1)
	}

	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		english     = flag.Bool("english", cfg.Execution.English, "Print messages in English")
		upgrade     = flag.Bool("upgrade", cfg.Machine.Upgrade, "Upgrade the Minsk-2 to the Minsk-22")
		setPassword = flag.Bool("set-password", cfg.Machine.SetPassword, "Put hidden password in memory")
		traceLevel  = flag.Int("trace", cfg.Execution.TraceLevel, "Trace level (0..3)")
		cpuQuota    = flag.Int("cpu-quota", cfg.Execution.CPUQuota, "CPU quota in instructions (<= 0 unlimited)")
		printQuota  = flag.Int("print-quota", cfg.Execution.PrintQuota, "Printer quota in lines (<= 0 unlimited)")
		debugMode   = flag.Bool("debug", false, "Open the front panel on a program file")
		daemonMode  = flag.Bool("daemon", false, "Run as daemon and listen for network connections")
		httpPort    = flag.Int("port", cfg.Daemon.HTTPPort, "HTTP port (used with -daemon)")
		tcpPort     = flag.Int("tcp-port", cfg.Daemon.TCPPort, "Classic TCP port (used with -daemon)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("Minsk-2 Emulator %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg.Machine.Upgrade = *upgrade
	cfg.Machine.SetPassword = *setPassword
	cfg.Execution.English = *english
	cfg.Execution.CPUQuota = *cpuQuota
	cfg.Execution.PrintQuota = *printQuota
	cfg.Execution.TraceLevel = *traceLevel

	if *daemonMode {
		runDaemon(cfg, *httpPort, *tcpPort)
		return
	}

	if *debugMode {
		runFrontPanel(cfg, flag.Arg(0))
		return
	}

	runProgram(cfg, os.Stdin)
}

// newMachine builds a machine from the effective configuration with output
// on stdout.
func newMachine(cfg *config.Config) (*vm.Machine, *bufio.Writer) {
	out := bufio.NewWriter(os.Stdout)
	m := vm.New(vm.Options{
		Upgrade:     cfg.Machine.Upgrade,
		SetPassword: cfg.Machine.SetPassword,
		CPUQuota:    cfg.Execution.CPUQuota,
		PrintQuota:  cfg.Execution.PrintQuota,
		TraceLevel:  cfg.Execution.TraceLevel,
		Output:      out,
	})
	return m, out
}

// runProgram is the classic mode: load the program from in, run it, report
// the stop. Parse failures report on stdout and exit 1.
func runProgram(cfg *config.Config, in *os.File) {
	m, out := newMachine(cfg)
	defer out.Flush()

	if err := parser.Parse(in, m.Memory); err != nil {
		reportParseError(out, err, cfg.Execution.English)
		out.Flush()
		os.Exit(1)
	}

	st := m.Run()
	st.Report(out, cfg.Execution.English)
}

// runFrontPanel loads a program file and opens the TUI debugger on it.
func runFrontPanel(cfg *config.Config, path string) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "minsk: -debug needs a program file argument")
		os.Exit(1)
	}
	f, err := os.Open(path) // #nosec G304 -- user-supplied program file
	if err != nil {
		fmt.Fprintf(os.Stderr, "minsk: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	m, out := newMachine(cfg)
	if err := parser.Parse(f, m.Memory); err != nil {
		reportParseError(out, err, cfg.Execution.English)
		out.Flush()
		os.Exit(1)
	}

	tui := debugger.NewTUI(debugger.NewDebugger(m))
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "minsk: %v\n", err)
		os.Exit(1)
	}
}

// runDaemon serves the HTTP API and the classic TCP interface until a
// shutdown signal arrives.
func runDaemon(cfg *config.Config, httpPort, tcpPort int) {
	server := api.NewServer(httpPort, cfg)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", tcpPort))
	if err != nil {
		fmt.Fprintf(os.Stderr, "minsk: %v\n", err)
		os.Exit(1)
	}

	go func() {
		if err := api.ServeTCP(ln, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "minsk: tcp: %v\n", err)
		}
	}()
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "minsk: http: %v\n", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	ln.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "minsk: shutdown: %v\n", err)
		os.Exit(1)
	}
}

func reportParseError(out *bufio.Writer, err error, english bool) {
	var pe *parser.Error
	if errors.As(err, &pe) {
		fmt.Fprintln(out, pe.Localized(english))
	} else {
		fmt.Fprintln(out, err)
	}
}

func printHelp() {
	fmt.Println("Minsk-2 Emulator")
	fmt.Println("\nUsage: minsk [options]          read a program from stdin and run it")
	fmt.Println("       minsk -debug <file>      open the front panel on a program")
	fmt.Println("       minsk -daemon            serve programs over the network")
	fmt.Println("\nOptions:")
	flag.PrintDefaults()
	fmt.Println("\nThe input is the octal load format: '@ o o o o' sets the load address,")
	fmt.Println("'+'/'-' and twelve octal digits load a word, ';' comments, '.' ends input.")
}
