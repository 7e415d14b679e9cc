package nvdxml

import (
	"strings"

	"github.com/samber/oops"
)

type nodeKind int

const (
	kindUnknown nodeKind = iota
	kindFeed
	kindEntry
	kindDescriptions
	kindDescription
	kindLossTypes
	kindAvailability
	kindConfidentiality
	kindIntegrity
	kindSecurityProtection
	kindRange
	kindLocal
	kindLocalNetwork
	kindNetwork
	kindUserInit
	kindReferences
	kindReference
	kindVulnerableSoftware
	kindProduct
	kindVersion
)

var nodeKinds = map[string]nodeKind{
	"nvd":           kindFeed,
	"entry":         kindEntry,
	"desc":          kindDescriptions,
	"descript":      kindDescription,
	"loss_types":    kindLossTypes,
	"avail":         kindAvailability,
	"conf":          kindConfidentiality,
	"int":           kindIntegrity,
	"sec_prot":      kindSecurityProtection,
	"range":         kindRange,
	"local":         kindLocal,
	"local_network": kindLocalNetwork,
	"network":       kindNetwork,
	"user_init":     kindUserInit,
	"refs":          kindReferences,
	"ref":           kindReference,
	"vuln_soft":     kindVulnerableSoftware,
	"prod":          kindProduct,
	"vers":          kindVersion,
}

// kindOf falls back to kindUnknown for elements the parser does not handle.
func kindOf(name string) nodeKind {
	return nodeKinds[name]
}

// frame is the state of one open element. It is discarded when the element closes.
type frame struct {
	kind  nodeKind
	name  string
	attrs Attributes
	text  strings.Builder
}

// contextStack mirrors the nesting of the open elements. Character data goes
// to a single pending buffer which is flushed before every push and every
// close, so the text always belongs to the frame on top.
type contextStack struct {
	frames  []*frame
	pending strings.Builder
}

func (s *contextStack) push(name string, attrs Attributes) *frame {
	f := &frame{
		kind:  kindOf(name),
		name:  name,
		attrs: attrs,
	}
	s.frames = append(s.frames, f)
	return f
}

func (s *contextStack) pop() (*frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrStackUnderflow
	}
	f := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

func (s *contextStack) peek() (*frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrEmptyContext
	}
	return s.frames[len(s.frames)-1], nil
}

func (s *contextStack) depth() int {
	return len(s.frames)
}

// parent returns the frame below the top, or nil.
func (s *contextStack) parent() *frame {
	if len(s.frames) < 2 {
		return nil
	}
	return s.frames[len(s.frames)-2]
}

func (s *contextStack) appendText(text string) {
	s.pending.WriteString(text)
}

// flush reads and clears the pending text.
func (s *contextStack) flush() string {
	text := s.pending.String()
	s.pending.Reset()
	return text
}

// attribute hands the pending text to the top frame. Only text-bearing
// frames may receive non-blank text.
func (s *contextStack) attribute(textBearing func(nodeKind) bool) error {
	text := s.flush()
	if text == "" {
		return nil
	}
	top, err := s.peek()
	if err != nil {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return oops.With("text", text).Wrapf(ErrProtocolViolation, "text outside of any element")
	}
	if textBearing(top.kind) {
		top.text.WriteString(text)
		return nil
	}
	if strings.TrimSpace(text) != "" {
		return oops.With("node", top.name).With("text", text).Wrapf(ErrProtocolViolation, "unexpected text")
	}
	return nil
}
