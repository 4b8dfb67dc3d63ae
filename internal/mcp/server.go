package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mark-chris/knnchat/internal/knowledge"
	"github.com/mark-chris/knnchat/internal/lexicon"
)

// maxMessageSize bounds a single newline-delimited message
const maxMessageSize = 1 << 20

// serverState represents the server lifecycle state
type serverState int

const (
	stateNotInitialized serverState = iota
	stateInitializing
	stateInitialized
)

// Server implements the Model Context Protocol for knnchat
type Server struct {
	index              *knowledge.Index
	learner            *knowledge.Learner
	minScore           float64
	tokenLimit         int
	log                *logrus.Entry
	state              serverState
	protocolVersion    string
	clientCapabilities map[string]interface{}
	mu                 sync.RWMutex
}

// Option configures a Server
type Option func(*Server)

// WithLearner enables the knn_learn tool
func WithLearner(l *knowledge.Learner) Option {
	return func(s *Server) { s.learner = l }
}

// WithLogger sets the server's logger
func WithLogger(log *logrus.Entry) Option {
	return func(s *Server) { s.log = log.WithField("component", "mcp") }
}

// WithMatchDefaults sets the confidence floor and token cap used by knn_match
func WithMatchDefaults(minScore float64, tokenLimit int) Option {
	return func(s *Server) {
		s.minScore = minScore
		s.tokenLimit = tokenLimit
	}
}

// NewServer creates a new MCP server
func NewServer(index *knowledge.Index, opts ...Option) *Server {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Server{
		index: index,
		state: stateNotInitialized,
		log:   logrus.NewEntry(discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// setState sets the server state (thread-safe)
func (s *Server) setState(state serverState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// getState gets the server state (thread-safe)
func (s *Server) getState() serverState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ServeStdio reads newline-delimited JSON-RPC messages from r and writes
// responses to w until r is exhausted or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	s.log.Info("MCP server listening on stdio")
	out := bufio.NewWriter(w)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read request: %w", err)
				}
				return nil
			}

			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}

			resp, err := s.handleMessage(line)
			if err != nil {
				return err
			}
			if len(resp) == 0 {
				continue
			}
			if _, err := out.Write(append(resp, '\n')); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
			if err := out.Flush(); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

// handleMessage processes one message and returns the encoded response,
// or nil for notifications. The error is reserved for encoding failures.
func (s *Server) handleMessage(data []byte) ([]byte, error) {
	req, err := parseRequest(data)
	if err != nil {
		s.log.WithError(err).Debug("Rejected message")
		return json.Marshal(createErrorResponse(err, nil))
	}

	if req.isNotification() {
		s.handleNotification(req)
		return nil, nil
	}

	log := s.log.WithFields(logrus.Fields{"method": req.Method, "id": req.ID})
	log.Debug("Request")

	var result interface{}
	switch req.Method {
	case "initialize":
		result, err = handleInitialize(s, req.Params)
	case "ping":
		result = map[string]interface{}{}
	case "tools/list":
		result, err = handleToolsList(s, req.Params)
	case "tools/call":
		result, err = handleToolsCall(s, req.Params)
	default:
		err = methodNotFound(req.Method)
	}

	if err != nil {
		log.WithError(err).Warn("Request failed")
		return json.Marshal(createErrorResponse(err, req.ID))
	}

	return json.Marshal(createResponse(result, req.ID))
}

func (s *Server) handleNotification(req *JSONRPCRequest) {
	switch req.Method {
	case "notifications/initialized":
		if s.getState() == stateInitializing {
			s.setState(stateInitialized)
			s.log.Info("Client initialized")
		}
	default:
		s.log.WithField("method", req.Method).Debug("Ignoring notification")
	}
}

// match runs knn_match
func (s *Server) match(query string, top int) (string, error) {
	result := knowledge.Query(s.index, knowledge.QueryOptions{
		Query:      query,
		Top:        top,
		MinScore:   s.minScore,
		TokenLimit: s.tokenLimit,
	})
	return knowledge.FormatOutput(result, knowledge.FormatJSON, false)
}

// learn runs knn_learn
func (s *Server) learn(input, response string) (string, error) {
	if s.learner == nil {
		return "", errors.New("learning is disabled on this server")
	}
	in, pos, err := s.learner.Learn(input, response)
	if err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"id": in.ID, "position": pos}).Info("Learned interaction")

	data, err := json.MarshalIndent(map[string]interface{}{
		"id":       in.ID,
		"position": pos,
		"input":    in.Input,
		"response": in.Response,
		"stale":    s.index.Stale(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

// augment runs knn_augment
func (s *Server) augment(sentence string) (string, error) {
	return knowledge.FormatAugmentations(knowledge.AugmentResult{
		Sentence: sentence,
		Rewrites: lexicon.AugmentWithSynonyms(sentence),
	}, knowledge.FormatJSON)
}
