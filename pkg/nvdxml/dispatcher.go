package nvdxml

import (
	"github.com/samber/oops"
)

type callback func(b *definitionBuilder, f *frame) error

type route struct {
	open  callback
	close callback
	// textBearing elements collect their character data and receive it on close.
	textBearing bool
}

var routes = map[nodeKind]route{
	kindEntry:       {open: (*definitionBuilder).openEntry, close: (*definitionBuilder).closeEntry},
	kindDescription: {close: (*definitionBuilder).description, textBearing: true},

	kindLossTypes:          {open: (*definitionBuilder).openLossTypes, close: (*definitionBuilder).closeLossTypes},
	kindAvailability:       {open: (*definitionBuilder).lossFlag},
	kindConfidentiality:    {open: (*definitionBuilder).lossFlag},
	kindIntegrity:          {open: (*definitionBuilder).lossFlag},
	kindSecurityProtection: {open: (*definitionBuilder).lossFlag},

	kindRange:        {open: (*definitionBuilder).openRange, close: (*definitionBuilder).closeRange},
	kindLocal:        {open: (*definitionBuilder).rangeFlag},
	kindLocalNetwork: {open: (*definitionBuilder).rangeFlag},
	kindNetwork:      {open: (*definitionBuilder).rangeFlag},
	kindUserInit:     {open: (*definitionBuilder).rangeFlag},

	kindReference: {close: (*definitionBuilder).reference, textBearing: true},
	kindProduct:   {open: (*definitionBuilder).openProduct, close: (*definitionBuilder).closeProduct},
	kindVersion:   {open: (*definitionBuilder).version},
}

func isTextBearing(kind nodeKind) bool {
	return routes[kind].textBearing
}

// dispatcher drives the context stack and the builder from tokenizer events.
// Elements without a route are tracked on the stack but otherwise ignored.
type dispatcher struct {
	stack   contextStack
	builder *definitionBuilder
	started bool
	ended   bool
}

func newDispatcher(b *definitionBuilder) *dispatcher {
	return &dispatcher{builder: b}
}

func (d *dispatcher) handle(ev Event) error {
	if d.ended {
		return oops.With("event", ev.Kind.String()).Wrapf(ErrProtocolViolation, "event after document end")
	}

	switch ev.Kind {
	case DocumentStart:
		if d.started {
			return oops.Wrapf(ErrProtocolViolation, "duplicate document start")
		}
		d.started = true
	case ElementOpen:
		d.started = true
		if err := d.stack.attribute(isTextBearing); err != nil {
			return err
		}
		f := d.stack.push(ev.Name, ev.Attrs)
		if open := routes[f.kind].open; open != nil {
			return open(d.builder, f)
		}
	case Text:
		d.stack.appendText(ev.Text)
	case ElementClose:
		if err := d.stack.attribute(isTextBearing); err != nil {
			return err
		}
		f, err := d.stack.pop()
		if err != nil {
			return oops.With("node", ev.Name).Wrapf(err, "close without open")
		}
		if f.name != ev.Name {
			return oops.With("open", f.name).With("close", ev.Name).Wrapf(ErrProtocolViolation, "mismatched close")
		}
		if closeFn := routes[f.kind].close; closeFn != nil {
			return closeFn(d.builder, f)
		}
	case DocumentEnd:
		d.ended = true
		if err := d.stack.attribute(isTextBearing); err != nil {
			return err
		}
		if top, err := d.stack.peek(); err == nil {
			return oops.With("node", top.name).With("depth", d.stack.depth()).
				Wrapf(ErrProtocolViolation, "document ended with open elements")
		}
		if d.builder.inEntry() {
			return oops.Wrapf(ErrProtocolViolation, "document ended inside an entry")
		}
	default:
		return oops.With("event", ev.Kind.String()).Wrapf(ErrProtocolViolation, "unknown event")
	}
	return nil
}
