package action

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/jmriego/gremlin/internal/xmlutil"
)

// SwitchMode activates a named mode on all devices.
type SwitchMode struct {
	ModeName string
}

func (a *SwitchMode) Tag() string { return "switch-mode" }

func (a *SwitchMode) FromXML(e *etree.Element) error {
	name, err := xmlutil.Attr(e, "mode-name")
	if err != nil {
		return err
	}
	a.ModeName = name
	return nil
}

func (a *SwitchMode) ToXML() *etree.Element {
	e := etree.NewElement("switch-mode")
	e.CreateAttr("mode-name", a.ModeName)
	return e
}

// SwitchPreviousMode reactivates whichever mode was active before the
// current one. It carries no payload.
type SwitchPreviousMode struct{}

func (a *SwitchPreviousMode) Tag() string { return "switch-to-previous-mode" }

func (a *SwitchPreviousMode) FromXML(e *etree.Element) error { return nil }

func (a *SwitchPreviousMode) ToXML() *etree.Element {
	return etree.NewElement("switch-to-previous-mode")
}

// CycleModes advances through an ordered list of mode names, wrapping
// around after the last entry.
type CycleModes struct {
	ModeNames []string
}

func (a *CycleModes) Tag() string { return "cycle-modes" }

func (a *CycleModes) FromXML(e *etree.Element) error {
	a.ModeNames = a.ModeNames[:0]
	for _, child := range e.ChildElements() {
		if child.Tag != "mode" {
			return fmt.Errorf("cycle-modes: unexpected child element <%s>", child.Tag)
		}
		name, err := xmlutil.Attr(child, "name")
		if err != nil {
			return err
		}
		a.ModeNames = append(a.ModeNames, name)
	}
	return nil
}

func (a *CycleModes) ToXML() *etree.Element {
	e := etree.NewElement("cycle-modes")
	for _, name := range a.ModeNames {
		mode := e.CreateElement("mode")
		mode.CreateAttr("name", name)
	}
	return e
}
