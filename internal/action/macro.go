package action

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jmriego/gremlin/internal/xmlutil"
)

// MacroStep is one entry of a macro sequence: either a key event or a
// pause. Exactly one of the two interpretations applies per step.
type MacroStep struct {
	// IsPause selects the pause interpretation.
	IsPause bool

	// Duration of the pause in seconds. Only read when IsPause is set.
	Duration float64

	// ScanCode and Extended identify the key. Only read for key steps.
	ScanCode int64
	Extended bool
}

// Macro replays a fixed sequence of key events and pauses.
type Macro struct {
	Steps []MacroStep
}

func (a *Macro) Tag() string { return "macro" }

func (a *Macro) FromXML(e *etree.Element) error {
	a.Steps = a.Steps[:0]
	for _, child := range e.ChildElements() {
		switch child.Tag {
		case "key":
			code, err := xmlutil.IntAttr(child, "scan-code")
			if err != nil {
				return err
			}
			extended, err := xmlutil.BoolAttr(child, "extended")
			if err != nil {
				return err
			}
			a.Steps = append(a.Steps, MacroStep{ScanCode: code, Extended: extended})
		case "pause":
			duration, err := xmlutil.FloatAttr(child, "duration")
			if err != nil {
				return err
			}
			a.Steps = append(a.Steps, MacroStep{IsPause: true, Duration: duration})
		default:
			return fmt.Errorf("macro: unexpected child element <%s>", child.Tag)
		}
	}
	return nil
}

func (a *Macro) ToXML() *etree.Element {
	e := etree.NewElement("macro")
	for _, step := range a.Steps {
		if step.IsPause {
			p := e.CreateElement("pause")
			p.CreateAttr("duration", strconv.FormatFloat(step.Duration, 'g', -1, 64))
			continue
		}
		k := e.CreateElement("key")
		k.CreateAttr("scan-code", strconv.FormatInt(step.ScanCode, 10))
		k.CreateAttr("extended", xmlutil.FormatBool(step.Extended))
	}
	return e
}
