package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmriego/gremlin/internal/plugin"
	"github.com/jmriego/gremlin/internal/profile"
	"github.com/jmriego/gremlin/internal/vars"
)

func TestHydrateRegistry(t *testing.T) {
	p := profile.New()
	p.Modules = append(p.Modules, &profile.Module{
		FileName: "plugins/trim.hcl",
		Instances: []*profile.Instance{
			{
				Name: "Default",
				Values: []profile.InstanceValue{
					{Label: "Count", Type: "int", Value: "7"},
					{Label: "Trim axis", Type: "physical_input", Input: &profile.InputValue{
						HardwareID: 72331530,
						WindowsID:  1,
						InputType:  "axis",
						InputID:    2,
					}},
				},
			},
		},
	})

	reg := vars.NewRegistry()
	HydrateRegistry(p, reg)

	assert.Equal(t, "7", reg.Get("plugins/trim.hcl", "Default", "Count"))

	ref, ok := reg.Get("plugins/trim.hcl", "Default", "Trim axis").(*plugin.InputRef)
	require.True(t, ok)
	assert.Equal(t, &plugin.InputRef{HardwareID: 72331530, WindowsID: 1, InputType: "axis", InputID: 2}, ref)
}

func TestHydrateRegistryClearsPreviousProfile(t *testing.T) {
	reg := vars.NewRegistry()
	reg.Set("plugins/old.hcl", "Default", "Gain", "0.5")

	p := profile.New()
	p.Modules = append(p.Modules, &profile.Module{
		FileName:  "plugins/trim.hcl",
		Instances: []*profile.Instance{{Name: "Default"}},
	})
	HydrateRegistry(p, reg)

	assert.Nil(t, reg.Get("plugins/old.hcl", "Default", "Gain"))
}
