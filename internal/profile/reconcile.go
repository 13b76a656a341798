package profile

import (
	"context"

	"github.com/jmriego/gremlin/internal/ctxlog"
	"github.com/jmriego/gremlin/internal/device"
)

// Reconcile synchronizes a loaded profile with the live device set: every
// attached non-virtual device missing from the profile gains a joystick
// entry populated with one empty mode per name in modeNames. The pass is
// additive only: devices and modes already present are never removed or
// altered, so a profile authored for hardware that is currently unplugged
// keeps its bindings. Running it twice is the same as running it once.
func Reconcile(ctx context.Context, p *Profile, live []device.Descriptor, modeNames []string) {
	logger := ctxlog.FromContext(ctx)

	for _, desc := range live {
		if desc.IsVirtual {
			continue
		}
		if _, ok := p.Device(desc.HardwareID); ok {
			continue
		}

		d := NewDevice(desc.Name, desc.HardwareID, desc.WindowsID, JoystickDevice)
		for _, name := range modeNames {
			d.EnsureMode(name)
		}
		p.AddDevice(d)
		logger.Debug("Added live device to profile.",
			"name", desc.Name, "hardware_id", desc.HardwareID)
	}
}
