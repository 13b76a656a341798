package xmlutil

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	cases := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"True", true, false},
		{"False", false, false},
		{"true", true, false},
		{"FALSE", false, false},
		{"1", true, false},
		{"0", false, false},
		{"2", false, true},
		{"-1", false, true},
		{"yes", false, true},
		{"", false, true},
	}
	for _, tc := range cases {
		got, err := ParseBool(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestMandatoryAttrs(t *testing.T) {
	e := etree.NewElement("key")
	e.CreateAttr("id", "30")
	e.CreateAttr("extended", "True")
	e.CreateAttr("weight", "0.5")

	id, err := IntAttr(e, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(30), id)

	ext, err := BoolAttr(e, "extended")
	require.NoError(t, err)
	assert.True(t, ext)

	w, err := FloatAttr(e, "weight")
	require.NoError(t, err)
	assert.Equal(t, 0.5, w)

	// Missing attributes are errors, not defaults.
	_, err = Attr(e, "missing")
	assert.Error(t, err)
	_, err = IntAttr(e, "missing")
	assert.Error(t, err)
}

func TestOptionalBoolAttr(t *testing.T) {
	e := etree.NewElement("button")

	got, err := OptionalBoolAttr(e, "always-execute", false)
	require.NoError(t, err)
	assert.False(t, got)

	// A present but malformed value must not fall back to the default.
	e.CreateAttr("always-execute", "maybe")
	_, err = OptionalBoolAttr(e, "always-execute", false)
	assert.Error(t, err)
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "True", FormatBool(true))
	assert.Equal(t, "False", FormatBool(false))
}
