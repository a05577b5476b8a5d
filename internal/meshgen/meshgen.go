// Package meshgen runs mesh generation on behalf of the front ends: it turns
// requests into buffers, checks them and hands them to a realizer.
package meshgen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gridmesh/internal/config"
	"github.com/Faultbox/gridmesh/internal/logger"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Service errors.
var (
	// ErrInternal marks a generator producing a buffer that fails Validate.
	ErrInternal = errors.New("internal generator error")
	ErrRealize  = errors.New("realizing mesh")
	ErrUnknown  = errors.New("unknown mesh kind")
)

// Kind selects the generator.
type Kind int

const (
	KindSheet Kind = iota
	KindCubes
)

func (k Kind) String() string {
	switch k {
	case KindSheet:
		return config.ModeSheet
	case KindCubes:
		return config.ModeCubes
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "sheet" or "cubes".
func ParseKind(s string) (Kind, error) {
	switch s {
	case config.ModeSheet:
		return KindSheet, nil
	case config.ModeCubes, "cube":
		return KindCubes, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// Request describes one generation. Only the parameters matching Kind are used.
type Request struct {
	Kind  Kind
	Sheet mesh.SheetSpec
	Cubes mesh.CubeSpec
	Hints mesh.Hints
}

// VertexCount returns the vertex count the request would generate.
func (r Request) VertexCount() int {
	if r.Kind == KindCubes {
		return r.Cubes.VertexCount()
	}
	return r.Sheet.VertexCount()
}

// Result is a generated, validated buffer.
type Result struct {
	Request Request
	Buffer  *mesh.Buffer
	Elapsed time.Duration
}

// Warning returns the buffer's capacity warning, if any.
func (r *Result) Warning() *mesh.CapacityWarning {
	return r.Buffer.Warning
}

// RequestFromConfig builds a request of the given kind from the config.
func RequestFromConfig(cfg *config.Config, kind Kind) (Request, error) {
	req := Request{Kind: kind}
	var err error
	switch kind {
	case KindSheet:
		req.Sheet, err = cfg.SheetSpec()
		req.Hints = cfg.SheetHints()
	case KindCubes:
		req.Cubes, err = cfg.CubeSpec()
		req.Hints = cfg.CubeHints()
	default:
		return req, fmt.Errorf("%w: %v", ErrUnknown, kind)
	}
	return req, err
}

// Build generates and validates the request's buffer without realizing it.
// It is safe to call concurrently.
func Build(req Request) (*Result, error) {
	start := time.Now()

	var (
		buf *mesh.Buffer
		err error
	)
	switch req.Kind {
	case KindSheet:
		buf, err = mesh.GenerateSheet(req.Sheet)
	case KindCubes:
		buf, err = mesh.GenerateCubes(req.Cubes)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknown, req.Kind)
	}
	if err != nil {
		return nil, err
	}

	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInternal, req.Kind, err)
	}

	return &Result{Request: req, Buffer: buf, Elapsed: time.Since(start)}, nil
}

// Service serialises regeneration and owns the current mesh.
type Service struct {
	mu           sync.Mutex
	realizer     mesh.Realizer
	log          *zap.Logger
	warnCapacity bool
	current      *Result
}

// Option configures a Service.
type Option func(*Service)

// WithLogger replaces the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithCapacityWarnings toggles logging of 16-bit capacity warnings.
func WithCapacityWarnings(enabled bool) Option {
	return func(s *Service) { s.warnCapacity = enabled }
}

// NewService creates a service that hands buffers to realizer. A nil
// realizer only keeps the result.
func NewService(realizer mesh.Realizer, opts ...Option) *Service {
	s := &Service{
		realizer:     realizer,
		log:          logger.Named("meshgen"),
		warnCapacity: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds req and, if that succeeds, realizes it and makes it the
// current mesh. On any error the current mesh is left unchanged.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if w := mesh.CheckVertexLimit(req.VertexCount()); w != nil && s.warnCapacity {
		s.log.Warn("mesh exceeds 16-bit index range",
			zap.Stringer("kind", req.Kind),
			zap.Int("vertices", w.VertexCount),
			zap.Int("limit", w.Limit),
		)
	}

	res, err := Build(req)
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.log.Error("generated buffer failed validation", zap.Error(err))
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.realizer != nil {
		if err := s.realizer.Realize(res.Buffer, req.Hints); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRealize, err)
		}
	}

	s.current = res
	s.log.Debug("mesh generated",
		zap.Stringer("kind", req.Kind),
		zap.Int("vertices", res.Buffer.VertexCount()),
		zap.Int("triangles", res.Buffer.TriangleCount()),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Current returns the last successfully generated mesh, or nil.
func (s *Service) Current() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
