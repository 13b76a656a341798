package action

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jmriego/gremlin/internal/xmlutil"
)

// Remap forwards a physical input to an input of a virtual output device.
type Remap struct {
	// VJoyDevice is the 1-based id of the virtual output device.
	VJoyDevice int64

	// VJoyInput is the axis, button or hat index on that device.
	VJoyInput int64

	// InputKind names the output input class: "axis", "button" or "hat".
	InputKind string
}

func (a *Remap) Tag() string { return "remap" }

func (a *Remap) FromXML(e *etree.Element) error {
	dev, err := xmlutil.IntAttr(e, "vjoy-device")
	if err != nil {
		return err
	}
	input, err := xmlutil.IntAttr(e, "vjoy-input")
	if err != nil {
		return err
	}
	kind, err := xmlutil.Attr(e, "input-type")
	if err != nil {
		return err
	}
	switch kind {
	case "axis", "button", "hat":
	default:
		return fmt.Errorf("remap: invalid input-type %q", kind)
	}
	a.VJoyDevice = dev
	a.VJoyInput = input
	a.InputKind = kind
	return nil
}

func (a *Remap) ToXML() *etree.Element {
	e := etree.NewElement("remap")
	e.CreateAttr("vjoy-device", strconv.FormatInt(a.VJoyDevice, 10))
	e.CreateAttr("vjoy-input", strconv.FormatInt(a.VJoyInput, 10))
	e.CreateAttr("input-type", a.InputKind)
	return e
}
