package nvdxml

import "strings"

type EventKind int

const (
	DocumentStart EventKind = iota
	ElementOpen
	Text
	ElementClose
	DocumentEnd
)

func (k EventKind) String() string {
	switch k {
	case DocumentStart:
		return "document-start"
	case ElementOpen:
		return "element-open"
	case Text:
		return "text"
	case ElementClose:
		return "element-close"
	case DocumentEnd:
		return "document-end"
	}
	return "unknown"
}

// Event is one token of a streaming XML tokenizer, in document order.
// Name is set for ElementOpen and ElementClose, Attrs for ElementOpen only,
// and Text for Text. Line is informational and may be zero.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs Attributes
	Text  string
	Line  int
}

type Attribute struct {
	Name  string
	Value string
}

// Attributes keeps the attributes of an element in document order.
type Attributes []Attribute

// Lookup returns the raw value of the first attribute with the given name.
func (as Attributes) Lookup(name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the attribute is present with a non-blank value.
func (as Attributes) Has(name string) bool {
	v, ok := as.Lookup(name)
	return ok && strings.TrimSpace(v) != ""
}

func Open(name string, attrs ...Attribute) Event {
	return Event{Kind: ElementOpen, Name: name, Attrs: attrs}
}

func Close(name string) Event {
	return Event{Kind: ElementClose, Name: name}
}

func CharData(text string) Event {
	return Event{Kind: Text, Text: text}
}

func Attr(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}
