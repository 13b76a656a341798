package plugin

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/jmriego/gremlin/internal/testutil"
)

// writePlugin writes an HCL plugin file into a temp dir and returns its path.
func writePlugin(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugin.hcl")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestLoadVariables(t *testing.T) {
	path := writePlugin(t, `
variable "Response strength" {
  type        = float
  description = "How hard the curve bends"
  default     = 0.5
  min         = -1
  max         = 1
}

variable "Repeat count" {
  type    = int
  default = 3
}

variable "Chat line" {
  type    = string
  default = "o7"
}

variable "Target mode" {
  type = mode
}

variable "Trim axis" {
  type        = physical_input
  valid_types = ["axis"]
}

variable "Output" {
  type = virtual_input
}
`)

	specs, err := LoadVariables(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 6)

	// Declaration order is preserved.
	labels := make([]string, 0, len(specs))
	for _, s := range specs {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{
		"Response strength", "Repeat count", "Chat line",
		"Target mode", "Trim axis", "Output",
	}, labels)

	strength := specs[0]
	assert.Equal(t, TypeFloat, strength.Type)
	assert.Equal(t, "How hard the curve bends", strength.Description)
	assert.Equal(t, -1.0, strength.Min)
	assert.Equal(t, 1.0, strength.Max)
	f, _ := strength.Default.AsBigFloat().Float64()
	assert.Equal(t, 0.5, f)

	repeat := specs[1]
	assert.Equal(t, TypeInt, repeat.Type)
	n, _ := repeat.Default.AsBigFloat().Int64()
	assert.Equal(t, int64(3), n)

	chat := specs[2]
	assert.Equal(t, TypeString, chat.Type)
	assert.Equal(t, "o7", chat.Default.AsString())

	assert.Equal(t, TypeMode, specs[3].Type)
	assert.Equal(t, cty.NilVal, specs[3].Default)

	trim := specs[4]
	assert.Equal(t, TypePhysicalInput, trim.Type)
	assert.Equal(t, []string{"axis"}, trim.ValidTypes)

	assert.Equal(t, TypeVirtualInput, specs[5].Type)
}

func TestNumericDefaulting(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type = int
}

variable "Gain" {
  type = float
}
`)

	specs, err := LoadVariables(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	count := specs[0]
	n, _ := count.Default.AsBigFloat().Int64()
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 0.0, count.Min)
	assert.Equal(t, 10.0, count.Max)

	gain := specs[1]
	f, _ := gain.Default.AsBigFloat().Float64()
	assert.Equal(t, 0.0, f)
	assert.Equal(t, -1.0, gain.Min)
	assert.Equal(t, 1.0, gain.Max)
}

func TestPartialBoundsKeepDeclaredOnes(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type = int
  max  = 100
}
`)

	specs, err := LoadVariables(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, 0.0, specs[0].Min)
	assert.Equal(t, 100.0, specs[0].Max)
}

func TestDuplicateLabelFirstSeenWins(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type    = int
  default = 1
}

variable "Count" {
  type    = int
  default = 2
}
`)

	recorder := testutil.NewLogRecorder()
	specs, err := LoadVariables(recorder.Context(), path)
	require.NoError(t, err)

	require.Len(t, specs, 1)
	n, _ := specs[0].Default.AsBigFloat().Int64()
	assert.Equal(t, int64(1), n)

	// The duplicate is reported, not silently resolved.
	assert.NotEmpty(t, recorder.Messages(slog.LevelError))
}

func TestMissingFileYieldsNoVariables(t *testing.T) {
	specs, err := LoadVariables(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestSuccessiveLoadsAreIsolated(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type = int
}
`)

	first, err := LoadVariables(context.Background(), path)
	require.NoError(t, err)
	second, err := LoadVariables(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.NotSame(t, first[0], second[0])
	assert.Equal(t, first, second)
}

func TestInvalidTypeKeywordFails(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type = tensor
}
`)

	_, err := LoadVariables(context.Background(), path)
	assert.Error(t, err)
}

func TestMissingTypeFails(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  default = 3
}
`)

	_, err := LoadVariables(context.Background(), path)
	assert.Error(t, err)
}

func TestDefaultMustConformToType(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type    = int
  default = ["nope"]
}
`)

	_, err := LoadVariables(context.Background(), path)
	assert.Error(t, err)
}

func TestBoundsRejectedForStrings(t *testing.T) {
	path := writePlugin(t, `
variable "Chat line" {
  type = string
  min  = 1
}
`)

	_, err := LoadVariables(context.Background(), path)
	assert.Error(t, err)
}

func TestFractionalBoundRejectedForInt(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type = int
  min  = 2.5
}
`)

	_, err := LoadVariables(context.Background(), path)
	assert.Error(t, err)
}

func TestFractionalDefaultRejectedForInt(t *testing.T) {
	path := writePlugin(t, `
variable "Count" {
  type    = int
  default = 2.5
}
`)

	_, err := LoadVariables(context.Background(), path)
	assert.Error(t, err)
}

func TestFractionalBoundAllowedForFloat(t *testing.T) {
	path := writePlugin(t, `
variable "Gain" {
  type = float
  min  = -0.5
  max  = 0.5
}
`)

	specs, err := LoadVariables(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, -0.5, specs[0].Min)
	assert.Equal(t, 0.5, specs[0].Max)
}

func TestMalformedHCLFails(t *testing.T) {
	path := writePlugin(t, `variable "Count" {`)

	_, err := LoadVariables(context.Background(), path)
	assert.Error(t, err)
}
