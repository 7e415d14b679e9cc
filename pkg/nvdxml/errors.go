package nvdxml

import "golang.org/x/xerrors"

var (
	// ErrMissingMandatoryField is returned when an entry cannot be identified.
	ErrMissingMandatoryField = xerrors.New("missing mandatory field")
	ErrMalformedNumeric      = xerrors.New("malformed numeric value")
	ErrMalformedDate         = xerrors.New("malformed date")

	// ErrProtocolViolation means the event stream does not follow the feed grammar:
	// unexpected text, unbalanced elements or elements outside their container.
	ErrProtocolViolation = xerrors.New("protocol violation")
	ErrStackUnderflow    = xerrors.Errorf("context stack underflow: %w", ErrProtocolViolation)
	ErrEmptyContext      = xerrors.Errorf("empty context: %w", ErrProtocolViolation)

	// ErrMalformedDocument wraps failures of the underlying XML tokenizer.
	ErrMalformedDocument = xerrors.New("malformed document")
	ErrSessionUsed       = xerrors.New("parse session already used")

	// Not fatal. These are only logged and collected as session warnings.
	ErrUnknownDescriptionSource = xerrors.New("unknown description source")
	ErrUnrecognizedVectorKey    = xerrors.New("unrecognized vector key")
	ErrUnknownCode              = xerrors.New("unknown code")
)
