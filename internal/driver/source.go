package driver

import (
	"bufio"
	"encoding/json"
	"log"
	"net"

	"github.com/distr1/depfix/internal/event"
)

// listenerSource accepts exactly one connection from the builder
// subprocess per iteration and decodes newline-delimited JSON envelopes
// into event.Raw values.
//
// This is deliberately the thinnest possible stand-in for "a decoded
// event stream": real production wiring replaces it with a gRPC
// build-event-protocol server decoding the builder's actual wire
// format, an out-of-scope external collaborator this module is built
// against but does not implement. Everything downstream of
// event.Source is identical either way.
type listenerSource struct {
	ln  net.Listener
	out chan event.Raw
	log *log.Logger
}

func newListenerSource(ln net.Listener, logger *log.Logger) *listenerSource {
	s := &listenerSource{ln: ln, out: make(chan event.Raw, 256), log: logger}
	go s.run()
	return s
}

func (s *listenerSource) Events() <-chan event.Raw { return s.out }

func (s *listenerSource) run() {
	defer close(s.out)
	conn, err := s.ln.Accept()
	if err != nil {
		if s.log != nil {
			s.log.Printf("driver: accepting build-event connection: %v", err)
		}
		return
	}
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var raw event.Raw
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			if s.log != nil {
				s.log.Printf("driver: decoding build event: %v", err)
			}
			continue
		}
		s.out <- raw
		if raw.BuildCompleted {
			return
		}
	}
	if err := scanner.Err(); err != nil && s.log != nil {
		s.log.Printf("driver: reading build-event connection: %v", err)
	}
}
