package driver

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// interruptForwarder implements the cancellation policy: while a
// builder child is running, SIGINT/SIGTERM are forwarded to it and the
// parent awaits its exit; with no child running, the parent exits
// immediately with code 137. Modeled on a single process-wide signal
// goroutine tracking one child pid at a time, rather than a list of
// cleanup callbacks.
type interruptForwarder struct {
	mu      sync.Mutex
	pid     int
	running bool
}

func newInterruptForwarder() *interruptForwarder {
	f := &interruptForwarder{}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		for s := range sig {
			f.mu.Lock()
			running, pid := f.running, f.pid
			f.mu.Unlock()
			if !running {
				os.Exit(137)
			}
			unixSig, ok := s.(syscall.Signal)
			if !ok {
				unixSig = syscall.SIGTERM
			}
			_ = unix.Kill(pid, unixSig)
		}
	}()
	return f
}

func (f *interruptForwarder) setChild(pid int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pid = pid
	f.running = true
}

func (f *interruptForwarder) clearChild() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
}
