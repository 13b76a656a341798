package plugin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/jmriego/gremlin/internal/ctxlog"
)

// rootSchema expects any number of labelled variable blocks at the top
// level of a plugin file.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "variable", LabelNames: []string{"label"}},
	},
}

// variableBodySchema is the schema for the body of a variable block. The
// required 'type' attribute is checked manually for a clearer message.
var variableBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
		{Name: "min"},
		{Name: "max"},
		{Name: "valid_types"},
	},
}

// LoadVariables extracts every variable declaration from the plugin file
// at path, in declaration order. A nonexistent path means the plugin has
// no variables and yields an empty result, not an error. Each call parses
// the file with a fresh parser; nothing is cached between calls.
//
// Duplicate labels are reported through the context logger and resolved
// first-seen-wins: the re-declaration is dropped, extraction continues.
func LoadVariables(ctx context.Context, path string) ([]*Spec, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Plugin file does not exist, no variables.", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("stat plugin %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing plugin %s: %w", path, diags)
	}

	content, contentDiags := file.Body.Content(rootSchema)
	allDiags := contentDiags

	seen := make(map[string]bool)
	var specs []*Spec
	for _, block := range content.Blocks.OfType("variable") {
		label := block.Labels[0]
		if seen[label] {
			logger.Error("Duplicate variable label in plugin, keeping first declaration.",
				"path", path, "label", label)
			continue
		}

		spec, specDiags := parseVariableBlock(block)
		allDiags = append(allDiags, specDiags...)
		if specDiags.HasErrors() {
			continue
		}

		seen[label] = true
		specs = append(specs, spec)
	}

	if allDiags.HasErrors() {
		return nil, fmt.Errorf("plugin %s: %w", path, allDiags)
	}
	return specs, nil
}

func parseVariableBlock(block *hcl.Block) (*Spec, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	bodyContent, contentDiags := block.Body.Content(variableBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	typeAttr, ok := bodyContent.Attributes["type"]
	if !ok {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'type' attribute",
			Detail:   "The 'type' attribute is required for all variable blocks.",
			Subject:  &missingItemRange,
		})
		return nil, diags
	}

	varType, typeDiags := typeFromExpr(typeAttr.Expr)
	diags = append(diags, typeDiags...)
	if typeDiags.HasErrors() {
		return nil, diags
	}

	spec := &Spec{Label: block.Labels[0], Type: varType}

	if attr, ok := bodyContent.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &spec.Description)...)
	}

	var hasDefault, hasMin, hasMax bool

	if attr, ok := bodyContent.Attributes["default"]; ok {
		defaultDiags := decodeDefault(spec, attr)
		diags = append(diags, defaultDiags...)
		hasDefault = !defaultDiags.HasErrors()
	}

	if attr, ok := bodyContent.Attributes["min"]; ok {
		boundDiags := decodeBound(spec, attr, &spec.Min)
		diags = append(diags, boundDiags...)
		hasMin = !boundDiags.HasErrors()
	}
	if attr, ok := bodyContent.Attributes["max"]; ok {
		boundDiags := decodeBound(spec, attr, &spec.Max)
		diags = append(diags, boundDiags...)
		hasMax = !boundDiags.HasErrors()
	}

	if attr, ok := bodyContent.Attributes["valid_types"]; ok {
		if varType != TypePhysicalInput && varType != TypeVirtualInput {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid 'valid_types' attribute",
				Detail:   "Only input reference variables accept 'valid_types'.",
				Subject:  attr.Expr.Range().Ptr(),
			})
		} else {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &spec.ValidTypes)...)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	spec.finalize(hasDefault, hasMin, hasMax)
	return spec, diags
}

// decodeDefault evaluates a literal default value and checks it conforms
// to the declared type.
func decodeDefault(spec *Spec, attr *hcl.Attribute) hcl.Diagnostics {
	var diags hcl.Diagnostics

	target := spec.Type.ctyType()
	if target == cty.NilType {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid 'default' attribute",
			Detail:   fmt.Sprintf("Variables of type %q do not accept a default.", spec.Type.Name()),
			Subject:  attr.Expr.Range().Ptr(),
		})
		return diags
	}

	// Defaults must be literal values; no evaluation context.
	val, valDiags := attr.Expr.Value(nil)
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return diags
	}

	converted, err := convert.Convert(val, target)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid default value type",
			Detail: fmt.Sprintf("The default value for %q is not compatible with its type, %q.",
				spec.Label, spec.Type.Name()),
			Subject: attr.Expr.Range().Ptr(),
		})
		return diags
	}

	if spec.Type == TypeInt {
		f, _ := converted.AsBigFloat().Float64()
		if f != math.Trunc(f) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid default value type",
				Detail:   fmt.Sprintf("The default value for %q must be a whole number.", spec.Label),
				Subject:  attr.Expr.Range().Ptr(),
			})
			return diags
		}
	}

	spec.Default = converted
	return diags
}

// decodeBound evaluates a literal min/max bound for a numeric variable.
func decodeBound(spec *Spec, attr *hcl.Attribute, out *float64) hcl.Diagnostics {
	var diags hcl.Diagnostics

	if !spec.Type.IsNumeric() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %q attribute", attr.Name),
			Detail:   fmt.Sprintf("Variables of type %q do not accept bounds.", spec.Type.Name()),
			Subject:  attr.Expr.Range().Ptr(),
		})
		return diags
	}

	val, valDiags := attr.Expr.Value(nil)
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return diags
	}

	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %q attribute", attr.Name),
			Detail:   fmt.Sprintf("The %q bound of %q must be a number.", attr.Name, spec.Label),
			Subject:  attr.Expr.Range().Ptr(),
		})
		return diags
	}

	bound, _ := converted.AsBigFloat().Float64()
	if spec.Type == TypeInt && bound != math.Trunc(bound) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %q attribute", attr.Name),
			Detail:   fmt.Sprintf("The %q bound of %q must be a whole number.", attr.Name, spec.Label),
			Subject:  attr.Expr.Range().Ptr(),
		})
		return diags
	}
	*out = bound
	return diags
}
