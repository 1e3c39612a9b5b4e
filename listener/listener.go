// Package listener serves text modification requests over a loopback
// TCP socket for desktop integrations that cannot speak HTTP. The
// protocol is one JSON request per connection, one JSON response back,
// then the connection closes.
package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"text-assistant/dto"
	"text-assistant/logger"
	"text-assistant/services"
	"text-assistant/trace"
	"text-assistant/validate"
)

const (
	// maxRequestBytes bounds a single socket request.
	maxRequestBytes = 64 * 1024

	// connTimeout bounds the full read-process-write cycle for one
	// connection.
	connTimeout = 60 * time.Second
)

// Listener accepts loopback connections and runs each request through
// the same pipeline the HTTP surface uses.
type Listener struct {
	addr string
	svc  *services.TextService

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

func New(addr string, svc *services.TextService) *Listener {
	return &Listener{addr: addr, svc: svc}
}

// Serve binds the socket and accepts connections until ctx is
// cancelled or Close is called. It blocks.
func (l *Listener) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("bind background listener on %s: %w", l.addr, err)
	}

	l.mu.Lock()
	l.ln = ln
	l.mu.Unlock()

	logger.InfoWithFields("background listener started", logger.Fields{"addr": l.addr})

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				l.wg.Wait()
				logger.Log.Info("background listener stopped")
				return nil
			}
			logger.ErrorWithFields("accept failed", logger.Fields{"error": err.Error()})
			continue
		}

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.handleConn(ctx, conn)
		}()
	}
}

// Close shuts the socket down; in-flight connections finish on their
// own deadline.
func (l *Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln != nil {
		l.ln.Close()
	}
}

// Addr reports the bound address. Only valid while serving.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

func (l *Listener) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(connTimeout))

	reqID := trace.GenerateID()
	ctx = trace.WithRequestID(ctx, reqID)

	var req dto.BackgroundRequest
	dec := json.NewDecoder(io.LimitReader(conn, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		logger.WarnWithFields("malformed background request", logger.Fields{
			"remote":     conn.RemoteAddr().String(),
			"error":      err.Error(),
			"request_id": reqID,
		})
		l.writeResponse(conn, dto.BackgroundResponse{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Invalid request format: %s", err.Error()),
			Timestamp:    time.Now().UTC(),
		})
		return
	}

	l.writeResponse(conn, l.process(ctx, req))
}

func (l *Listener) process(ctx context.Context, req dto.BackgroundRequest) dto.BackgroundResponse {
	start := time.Now()

	if errs := validate.ValidateBackground(req); len(errs) > 0 {
		return dto.BackgroundResponse{
			Success:      false,
			ErrorMessage: strings.Join(errs, "; "),
			Timestamp:    time.Now().UTC(),
		}
	}

	logger.InfoWithFields("processing background request", logger.Fields{
		"operation":          req.Operation,
		"text_length":        len(req.Text),
		"source_application": req.SourceApplication,
		"user_id":            req.UserID,
		"request_id":         trace.RequestIDFromContext(ctx),
	})

	resp, procErr := l.svc.Process(ctx, dto.ModificationRequest{
		Text:              req.Text,
		Operation:         req.Operation,
		UserID:            req.UserID,
		Options:           req.Options,
		SourceApplication: req.SourceApplication,
		WindowTitle:       req.WindowTitle,
	})
	if procErr != nil {
		return dto.BackgroundResponse{
			Success:        false,
			ErrorMessage:   procErr.Error(),
			ProcessingTime: time.Since(start).Seconds(),
			Timestamp:      time.Now().UTC(),
		}
	}

	return dto.BackgroundResponse{
		Success:        true,
		ModifiedText:   resp.ModifiedText,
		ProcessingTime: time.Since(start).Seconds(),
		Timestamp:      time.Now().UTC(),
	}
}

func (l *Listener) writeResponse(conn net.Conn, resp dto.BackgroundResponse) {
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		logger.ErrorWithFields("failed to write background response", logger.Fields{
			"remote": conn.RemoteAddr().String(),
			"error":  err.Error(),
		})
	}
}
