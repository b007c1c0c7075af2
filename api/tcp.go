package api

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/karelp/minsk-emulator/config"
	"github.com/karelp/minsk-emulator/parser"
	"github.com/karelp/minsk-emulator/vm"
)

// The classic museum daemon: a raw TCP listener where the connection simply
// becomes the machine's standard input and output, with a session wall
// clock and tight quotas.

const welcomeBanner = "+++ Welcome to our computer museum. +++\n" +
	"+++ Our time machine will connect you to one of our exhibits. +++\n\n"

const timeoutNotice = "--- Timed out. Time machine disconnected. ---\n"

// ServeTCP accepts connections on ln until the listener closes, serving
// each in its own goroutine.
func ServeTCP(ln net.Listener, cfg *config.Config) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go serveConn(conn, cfg)
	}
}

func serveConn(conn net.Conn, cfg *config.Config) {
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("connection close error: %v", err)
		}
	}()
	log.Printf("accepted connection from %s", conn.RemoteAddr())

	// The session clock covers both feeding the program and its output;
	// the CPU quota bounds execution itself, so a deadline on the socket
	// is all the wall clock the session needs.
	deadline := time.Duration(cfg.Daemon.SessionSeconds) * time.Second
	if err := conn.SetDeadline(time.Now().Add(deadline)); err != nil {
		log.Printf("deadline error: %v", err)
		return
	}

	out := bufio.NewWriter(conn)
	defer out.Flush()
	fmt.Fprint(out, welcomeBanner)
	out.Flush()

	lim := limitsFrom(cfg)
	m := vm.New(vm.Options{
		Upgrade:    lim.Upgrade,
		CPUQuota:   lim.CPUQuota,
		PrintQuota: lim.PrintQuota,
		Output:     out,
	})

	if err := parser.Parse(conn, m.Memory); err != nil {
		var pe *parser.Error
		switch {
		case errors.As(err, &pe) && pe.Kind == parser.ErrorRead:
			fmt.Fprint(out, timeoutNotice)
		case errors.As(err, &pe):
			fmt.Fprintln(out, pe.Localized(lim.English))
		default:
			fmt.Fprintln(out, err)
		}
		log.Printf("session from %s ended: %v", conn.RemoteAddr(), err)
		return
	}

	st := m.Run()
	st.Report(out, lim.English)
	log.Printf("session from %s stopped: %s", conn.RemoteAddr(), st.Reason)
}
