package sync

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
)

// Server accepts TCP line clients for a Hub.
type Server struct {
	Addr string
	Hub  *Hub

	logger *log.Logger
	mu     sync.Mutex
	ln     net.Listener
	closed bool
	wg     sync.WaitGroup
}

func NewServer(addr string, hub *Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Addr: addr, Hub: hub, logger: logger}
}

// Listen binds the server address without accepting yet.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return net.ErrClosed
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	s.ln = ln
	s.logger.Printf("[tcp-sync] listening on %s", ln.Addr())
	return nil
}

// ListenAddr is the bound address, nil before Listen.
func (s *Server) ListenAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Run listens if needed and accepts clients until Close. It returns nil
// after Close.
func (s *Server) Run() error {
	if s.ListenAddr() == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Printf("[tcp-sync] accept: %v", err)
			continue
		}

		s.Hub.Add(conn)
		s.logger.Printf("[tcp-sync] client connected: %s", conn.RemoteAddr())

		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			defer func() {
				s.Hub.Remove(c)
				s.logger.Printf("[tcp-sync] client disconnected: %s", c.RemoteAddr())
			}()

			// incoming lines are ignored
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

// Close stops accepting, disconnects every client and waits for their
// goroutines.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	ln := s.ln
	s.mu.Unlock()

	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.Hub.CloseAll()
	s.wg.Wait()
	return err
}
