// Package device defines the descriptor for a physical or virtual input
// device and the enumerator interface through which the core learns which
// devices are currently attached. Actual enumeration (DirectInput, evdev,
// ...) is a collaborator's concern; the core only consumes the result.
package device

import "context"

// Descriptor identifies one attached input device.
type Descriptor struct {
	// HardwareID is the stable identifier of the physical hardware. It is
	// the key under which a profile stores the device.
	HardwareID int64

	// WindowsID disambiguates identical devices plugged in simultaneously.
	WindowsID int64

	// Name is the display name. The literal name "keyboard" identifies the
	// built-in keyboard device.
	Name string

	// IsVirtual marks devices created by output drivers (e.g. vJoy).
	// Virtual devices are never added to a profile by reconciliation.
	IsVirtual bool
}

// Enumerator supplies the set of currently attached devices.
type Enumerator interface {
	ListDevices(ctx context.Context) ([]Descriptor, error)
}

// StaticEnumerator is an Enumerator over a fixed device list. It is used in
// tests and by tooling that operates on a profile without live hardware.
type StaticEnumerator struct {
	Devices []Descriptor
}

// ListDevices returns a copy of the configured device list.
func (e *StaticEnumerator) ListDevices(ctx context.Context) ([]Descriptor, error) {
	out := make([]Descriptor, len(e.Devices))
	copy(out, e.Devices)
	return out, nil
}
