package profile

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat marks structural defects in a profile document: unknown
// input tags, malformed boolean or integer attributes, missing mandatory
// attributes. Errors of this kind abort the load of the document.
var ErrInvalidFormat = errors.New("invalid profile format")

// InputType classifies a physical input.
type InputType int

const (
	JoystickAxis InputType = iota + 1
	JoystickButton
	JoystickHat
	Keyboard
)

// inputTypes lists every valid InputType in serialization order.
var inputTypes = []InputType{JoystickAxis, JoystickButton, JoystickHat, Keyboard}

var inputTypeTags = map[InputType]string{
	JoystickAxis:   "axis",
	JoystickButton: "button",
	JoystickHat:    "hat",
	Keyboard:       "key",
}

// Tag returns the XML element tag for the input type.
func (t InputType) Tag() string {
	tag, ok := inputTypeTags[t]
	if !ok {
		panic(fmt.Sprintf("profile: invalid input type %d", int(t)))
	}
	return tag
}

func (t InputType) String() string {
	switch t {
	case JoystickAxis:
		return "JoystickAxis"
	case JoystickButton:
		return "JoystickButton"
	case JoystickHat:
		return "JoystickHat"
	case Keyboard:
		return "Keyboard"
	default:
		return fmt.Sprintf("InputType(%d)", int(t))
	}
}

// InputTypeFromTag maps an XML element tag to its input type. Tags outside
// the four known ones are a format error.
func InputTypeFromTag(tag string) (InputType, error) {
	switch tag {
	case "axis":
		return JoystickAxis, nil
	case "button":
		return JoystickButton, nil
	case "hat":
		return JoystickHat, nil
	case "key":
		return Keyboard, nil
	default:
		return 0, fmt.Errorf("%w: invalid input type tag %q", ErrInvalidFormat, tag)
	}
}

// DeviceType distinguishes the built-in keyboard from joystick hardware.
type DeviceType int

const (
	KeyboardDevice DeviceType = iota + 1
	JoystickDevice
)

func (t DeviceType) String() string {
	switch t {
	case KeyboardDevice:
		return "Keyboard"
	case JoystickDevice:
		return "Joystick"
	default:
		return fmt.Sprintf("DeviceType(%d)", int(t))
	}
}

// InputID identifies one input within an input type. For axes, buttons and
// hats only ID is meaningful; keyboard inputs additionally carry the
// extended-key flag, which distinguishes e.g. the two Enter keys sharing a
// scan code.
type InputID struct {
	ID       int64
	Extended bool
}

// NewInputID builds the identifier for an axis, button or hat input.
func NewInputID(id int64) InputID {
	return InputID{ID: id}
}

// NewKeyID builds the identifier for a keyboard input.
func NewKeyID(scanCode int64, extended bool) InputID {
	return InputID{ID: scanCode, Extended: extended}
}
