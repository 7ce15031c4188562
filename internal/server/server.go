package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AdonaIsium/workerboard/internal/request"
	"github.com/AdonaIsium/workerboard/internal/response"
)

// Dispatcher turns a parsed request into the response to write back. A nil
// response means the connection is closed without an answer.
type Dispatcher interface {
	Dispatch(req *request.Request) (*response.Response, error)
}

// Accept errors that are not a shutdown are retried after a pause that
// doubles from minAcceptDelay up to maxAcceptDelay.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

type Config struct {
	Addr string
	// Concurrency is how many connections may be serviced at once. 1 keeps
	// accept and handling on the same goroutine.
	Concurrency int
	Logger      *slog.Logger
}

type Server struct {
	listener    net.Listener
	dispatcher  Dispatcher
	logger      *slog.Logger
	concurrency int

	closed atomic.Bool
	done   chan struct{}
	wg     sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// Serve binds cfg.Addr and starts the accept loop in the background. The
// returned server keeps running until Close.
func Serve(cfg Config, d Dispatcher) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	return serveListener(listener, cfg, d), nil
}

func serveListener(listener net.Listener, cfg Config, d Dispatcher) *Server {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		listener:    listener,
		dispatcher:  d,
		logger:      cfg.Logger,
		concurrency: cfg.Concurrency,
		done:        make(chan struct{}),
		conns:       map[net.Conn]struct{}{},
	}
	s.logger.Info("server listening", "addr", listener.Addr().String(), "concurrency", s.concurrency)

	s.wg.Add(1)
	go s.listen()
	return s
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) Port() int {
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Close stops accepting, drops any connection still being serviced and waits
// for the loop to finish.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(s.done)
	err := s.listener.Close()

	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return err
}

func (s *Server) listen() {
	defer s.wg.Done()

	var slots chan struct{}
	if s.concurrency > 1 {
		slots = make(chan struct{}, s.concurrency)
	}

	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			delay = max(min(delay*2, maxAcceptDelay), minAcceptDelay)
			s.logger.Error("accept failed", "error", err, "retry_in", delay)
			if !s.pause(delay) {
				return
			}
			continue
		}
		delay = 0

		if slots == nil {
			s.handle(conn)
			continue
		}

		slots <- struct{}{}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { <-slots }()
			s.handle(conn)
		}()
	}
}

// pause waits for d and reports false if the server was closed meanwhile.
func (s *Server) pause(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.done:
		return false
	}
}

func (s *Server) track(conn net.Conn, active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !active {
		delete(s.conns, conn)
		return true
	}
	if s.closed.Load() {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

// handle services exactly one request on conn. Every failure is logged and
// swallowed so the loop can carry on with the next connection.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	if !s.track(conn, true) {
		return
	}
	defer s.track(conn, false)

	remote := conn.RemoteAddr().String()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panicked", "remote", remote, "panic", r)
		}
	}()

	req, err := request.RequestFromReader(conn)
	if err != nil {
		s.logger.Warn("request abandoned", "remote", remote, "error", err)
		return
	}

	res, err := s.dispatcher.Dispatch(req)
	if err != nil {
		s.logger.Error("request failed", "remote", remote,
			"method", req.RequestLine.Method, "target", req.RequestLine.RequestTarget, "error", err)
		return
	}
	if res == nil {
		s.logger.Debug("no response", "remote", remote,
			"method", req.RequestLine.Method, "target", req.RequestLine.RequestTarget)
		return
	}

	if err := response.Write(conn, res); err != nil {
		s.logger.Error("write response", "remote", remote, "error", err)
		return
	}
	s.logger.Info("request served", "remote", remote,
		"method", req.RequestLine.Method, "target", req.RequestLine.RequestTarget, "status", res.StatusLine)
}
