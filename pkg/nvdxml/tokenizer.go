package nvdxml

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/samber/oops"
)

// Tokenizer produces events in document order and returns io.EOF after the last one.
type Tokenizer interface {
	Next() (Event, error)
}

type xmlTokenizer struct {
	decoder *xml.Decoder
	started bool
	done    bool
}

// NewTokenizer streams events out of an XML document. Namespaces are
// dropped, elements and attributes are matched by local name.
func NewTokenizer(r io.Reader) Tokenizer {
	return &xmlTokenizer{decoder: xml.NewDecoder(r)}
}

func (t *xmlTokenizer) Next() (Event, error) {
	if !t.started {
		t.started = true
		return Event{Kind: DocumentStart, Line: 1}, nil
	}

	for !t.done {
		tok, err := t.decoder.Token()
		line, _ := t.decoder.InputPos()
		if errors.Is(err, io.EOF) {
			t.done = true
			return Event{Kind: DocumentEnd, Line: line}, nil
		} else if err != nil {
			return Event{}, oops.With("line", line).Wrapf(ErrMalformedDocument, "%s", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			attrs := make(Attributes, 0, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs = append(attrs, Attribute{Name: a.Name.Local, Value: a.Value})
			}
			return Event{Kind: ElementOpen, Name: tok.Name.Local, Attrs: attrs, Line: line}, nil
		case xml.EndElement:
			return Event{Kind: ElementClose, Name: tok.Name.Local, Line: line}, nil
		case xml.CharData:
			return Event{Kind: Text, Text: string(tok), Line: line}, nil
		}
		// Comments, processing instructions and directives carry nothing for us.
	}
	return Event{}, io.EOF
}

// sliceTokenizer replays a fixed list of events.
type sliceTokenizer struct {
	events []Event
}

// NewEventTokenizer replays the given events, e.g. from another XML library.
func NewEventTokenizer(events ...Event) Tokenizer {
	return &sliceTokenizer{events: events}
}

func (t *sliceTokenizer) Next() (Event, error) {
	if len(t.events) == 0 {
		return Event{}, io.EOF
	}
	ev := t.events[0]
	t.events = t.events[1:]
	return ev, nil
}
