package action

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := DefaultRegistry()

	ctor, ok := r.Resolve("remap")
	require.True(t, ok)
	assert.IsType(t, &Remap{}, ctor())

	_, ok = r.Resolve("teleport")
	assert.False(t, ok)
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("remap", func() Binding { return &Remap{} })
	r.Register("remap", func() Binding { return &SwitchMode{} })

	ctor, ok := r.Resolve("remap")
	require.True(t, ok)
	assert.IsType(t, &SwitchMode{}, ctor())
}

func TestRegisterBindingKeysOnReportedTag(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(func() Binding { return &Remap{} })

	ctor, ok := r.Resolve("remap")
	require.True(t, ok)
	assert.IsType(t, &Remap{}, ctor())
}

func TestBindingsSerializeUnderTheirTag(t *testing.T) {
	r := DefaultRegistry()
	for _, tag := range r.Tags() {
		ctor, ok := r.Resolve(tag)
		require.True(t, ok)
		binding := ctor()
		assert.Equal(t, tag, binding.Tag())
		assert.Equal(t, tag, binding.ToXML().Tag)
	}
}

func TestTagsSorted(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{
		"cycle-modes",
		"macro",
		"pause-action",
		"remap",
		"response-curve",
		"resume-action",
		"switch-mode",
		"switch-to-previous-mode",
	}, r.Tags())
}

func TestRemapRoundTrip(t *testing.T) {
	in := &Remap{VJoyDevice: 1, VJoyInput: 6, InputKind: "button"}

	out := &Remap{}
	require.NoError(t, out.FromXML(in.ToXML()))
	assert.Equal(t, in, out)
}

func TestRemapRejectsBadInputKind(t *testing.T) {
	e := etree.NewElement("remap")
	e.CreateAttr("vjoy-device", "1")
	e.CreateAttr("vjoy-input", "2")
	e.CreateAttr("input-type", "slider")

	err := (&Remap{}).FromXML(e)
	assert.Error(t, err)
}

func TestRemapRequiresDeviceAttr(t *testing.T) {
	e := etree.NewElement("remap")
	e.CreateAttr("vjoy-input", "2")
	e.CreateAttr("input-type", "axis")

	err := (&Remap{}).FromXML(e)
	assert.Error(t, err)
}

func TestCycleModesPreservesOrder(t *testing.T) {
	in := &CycleModes{ModeNames: []string{"global", "combat", "landing"}}

	out := &CycleModes{}
	require.NoError(t, out.FromXML(in.ToXML()))
	assert.Equal(t, []string{"global", "combat", "landing"}, out.ModeNames)
}

func TestMacroRoundTrip(t *testing.T) {
	in := &Macro{Steps: []MacroStep{
		{ScanCode: 30, Extended: false},
		{IsPause: true, Duration: 0.25},
		{ScanCode: 57, Extended: true},
	}}

	out := &Macro{}
	require.NoError(t, out.FromXML(in.ToXML()))
	assert.Equal(t, in, out)
}

func TestMacroRejectsUnknownChild(t *testing.T) {
	e := etree.NewElement("macro")
	e.CreateElement("mouse")

	err := (&Macro{}).FromXML(e)
	assert.Error(t, err)
}

func TestResponseCurveRoundTrip(t *testing.T) {
	in := &ResponseCurve{
		Mapping: "cubic-spline",
		Points: []CurvePoint{
			{X: -1, Y: -1},
			{X: 0, Y: 0.25},
			{X: 1, Y: 1},
		},
	}

	out := &ResponseCurve{}
	require.NoError(t, out.FromXML(in.ToXML()))
	assert.Equal(t, in, out)
}

func TestSwitchModeRequiresName(t *testing.T) {
	err := (&SwitchMode{}).FromXML(etree.NewElement("switch-mode"))
	assert.Error(t, err)
}
