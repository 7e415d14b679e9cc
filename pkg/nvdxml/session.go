package nvdxml

import (
	"context"
	"errors"
	"io"

	"github.com/samber/oops"

	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/types"
)

type Option func(*Session)

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLenientDates logs and skips malformed published/modified dates
// instead of failing the parse.
func WithLenientDates() Option {
	return func(s *Session) {
		s.lenientDates = true
	}
}

// Session parses exactly one document. It is not safe for concurrent use;
// parse each document with its own session.
type Session struct {
	logger       *log.Logger
	lenientDates bool

	definitions []types.Definition
	warnings    []error
	used        bool
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		logger: log.WithPrefix("nvd-xml"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse is a shortcut for parsing r with a fresh session.
func Parse(ctx context.Context, r io.Reader, opts ...Option) ([]types.Definition, error) {
	return NewSession(opts...).Parse(ctx, r)
}

func (s *Session) Parse(ctx context.Context, r io.Reader) ([]types.Definition, error) {
	return s.Run(ctx, NewTokenizer(r))
}

// Run consumes tok until io.EOF and returns the definitions in document
// order. The parse is atomic: on the first fatal error nothing is returned.
func (s *Session) Run(ctx context.Context, tok Tokenizer) ([]types.Definition, error) {
	if s.used {
		return nil, ErrSessionUsed
	}
	s.used = true

	defs, err := s.run(ctx, tok)
	if err != nil {
		s.definitions = nil
		return nil, err
	}
	s.logger.Debug("Parsed document", log.Int("definitions", len(defs)), log.Int("warnings", len(s.warnings)))
	return defs, nil
}

func (s *Session) run(ctx context.Context, tok Tokenizer) ([]types.Definition, error) {
	d := newDispatcher(&definitionBuilder{
		lenientDates: s.lenientDates,
		logger:       s.logger,
		warn:         s.warn,
		emit: func(def types.Definition) {
			s.definitions = append(s.definitions, def)
		},
	})

	for {
		if err := ctx.Err(); err != nil {
			return nil, oops.Wrapf(err, "parse canceled")
		}

		ev, err := tok.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, oops.Wrapf(err, "tokenizer error")
		}

		if err = d.handle(ev); err != nil {
			return nil, oops.With("line", ev.Line).With("event", ev.Kind.String()).Wrapf(err, "parse error")
		}
	}

	// Event sources are not required to send DocumentEnd.
	if !d.ended {
		if err := d.handle(Event{Kind: DocumentEnd}); err != nil {
			return nil, oops.Wrapf(err, "parse error")
		}
	}
	return s.definitions, nil
}

func (s *Session) warn(err error) {
	s.warnings = append(s.warnings, err)
	s.logger.Warn("Skipped invalid data", log.Err(err))
}

// Warnings returns the non-fatal problems found during the parse.
func (s *Session) Warnings() []error {
	return s.warnings
}
