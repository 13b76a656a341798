package app

import (
	"github.com/jmriego/gremlin/internal/plugin"
	"github.com/jmriego/gremlin/internal/profile"
	"github.com/jmriego/gremlin/internal/vars"
)

// HydrateRegistry replaces the registry's contents with the per-instance
// variable values persisted in the profile. The clear comes first so that
// values of a previously loaded profile never leak into instances of the
// new one sharing the same (module, instance, label) triple.
func HydrateRegistry(p *profile.Profile, reg *vars.Registry) {
	reg.Clear()
	for _, mod := range p.Modules {
		for _, inst := range mod.Instances {
			for _, value := range inst.Values {
				reg.Set(mod.FileName, inst.Name, value.Label, registryValue(value))
			}
		}
	}
}

// registryValue converts a persisted instance value into its untyped
// registry form: input references become *plugin.InputRef, everything else
// stays the primitive string the cast table re-types on read.
func registryValue(value profile.InstanceValue) any {
	if value.Input != nil {
		return &plugin.InputRef{
			HardwareID: value.Input.HardwareID,
			WindowsID:  value.Input.WindowsID,
			InputType:  value.Input.InputType,
			InputID:    value.Input.InputID,
		}
	}
	return value.Value
}
