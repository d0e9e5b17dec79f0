// Package irctest provides a mock IRC server for tests: an
// io.ReadWriteCloser backed by an in-memory pipe, so the transport and
// handshake packages can be exercised without a real socket.
package irctest

import (
	"encoding"
	"io"
	"log"
	"strings"
	"sync"
)

// NewServer creates a new mock IRC server that implements
// io.ReadWriteCloser from the client's point of view: Write sends
// bytes to the server (observable via Lines), and
// WriteString/WriteMessage send a line back to the client (readable
// via Read). Don't forget to close.
func NewServer() *Server {
	s := &Server{}
	s.sendReader, s.sendWriter = io.Pipe()
	s.recv = make(chan []byte, 64)
	return s
}

// Server is a mock IRC server: a client dials it as an
// io.ReadWriteCloser, and the test reads what the client sent via
// Lines or writes synthetic server lines via WriteString/WriteMessage.
type Server struct {
	closeOnce sync.Once
	recv      chan []byte

	sendReader *io.PipeReader
	sendWriter *io.PipeWriter
}

// Read is how the client reads lines sent by the server.
func (s *Server) Read(p []byte) (int, error) {
	return s.sendReader.Read(p)
}

// Write is how a client sends bytes to the server; they become
// observable from Lines. Write never blocks on a slow test reader
// (the channel is buffered); a full channel drops the write and
// reports an error.
func (s *Server) Write(p []byte) (int, error) {
	cp := append([]byte(nil), p...)
	select {
	case s.recv <- cp:
		return len(p), nil
	default:
		return 0, io.ErrShortWrite
	}
}

// Close closes the server's read side and the recv channel.
func (s *Server) Close() error {
	err := s.sendWriter.Close()
	s.closeOnce.Do(func() {
		close(s.recv)
	})
	return err
}

// Lines returns the channel of raw byte slices the client has
// written, in order.
func (s *Server) Lines() <-chan []byte {
	return s.recv
}

// WriteString sends a line from the server to the client, appending
// "\r\n" if it isn't already present.
func (s *Server) WriteString(str string) {
	if !strings.HasSuffix(str, "\r\n") {
		str = str + "\r\n"
	}
	if _, err := s.sendWriter.Write([]byte(str)); err != nil {
		log.Println("irctest: write error:", err)
	}
}

// WriteMessage sends an encoded message from the server to the client.
func (s *Server) WriteMessage(m encoding.TextMarshaler) {
	b, err := m.MarshalText()
	if len(b) == 0 {
		if err != nil {
			log.Println("irctest: marshal error:", err)
		}
		return
	}
	if _, werr := s.sendWriter.Write(b); werr != nil {
		log.Println("irctest: write error:", werr)
	}
}
