// Package plugin implements the custom-module variable system: typed
// variable declarations read from user-authored HCL plugin files, and the
// hydration of those variables from the value registry.
//
// A plugin declares its configurable surface as data:
//
//	variable "Curvature" {
//	  type        = float
//	  description = "Strength of the response curve"
//	  default     = 0.5
//	  min         = -1
//	  max         = 1
//	}
//
// Declaration is pure parsing with no side effects; reading a stored value
// is a separate, explicit Hydrate call carrying the (module, instance)
// binding. Each extraction call parses the file with a fresh parser, so no
// state leaks between successive loads of the same path.
package plugin

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// VariableType is the tagged variant of a variable declaration.
type VariableType int

const (
	TypeInt VariableType = iota + 1
	TypeFloat
	TypeString
	TypeMode
	TypeVirtualInput
	TypePhysicalInput
)

var typeNames = map[VariableType]string{
	TypeInt:           "int",
	TypeFloat:         "float",
	TypeString:        "string",
	TypeMode:          "mode",
	TypeVirtualInput:  "virtual_input",
	TypePhysicalInput: "physical_input",
}

// Name returns the type keyword used in declarations and documents.
func (t VariableType) Name() string {
	name, ok := typeNames[t]
	if !ok {
		panic(fmt.Sprintf("plugin: invalid variable type %d", int(t)))
	}
	return name
}

func (t VariableType) String() string { return t.Name() }

// IsNumeric reports whether the type carries min/max bounds.
func (t VariableType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// TypeFromName maps a type keyword back to its VariableType.
func TypeFromName(name string) (VariableType, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// typeFromExpr decodes the `type` attribute of a variable block. The
// attribute must be a bare type keyword, not a complex expression.
func typeFromExpr(expr hcl.Expression) (VariableType, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail: "The 'type' attribute must be a bare type keyword: " +
				"int, float, string, mode, virtual_input or physical_input.",
			Subject: expr.Range().Ptr(),
		})
		return 0, diags
	}

	t, ok := TypeFromName(traversal.RootName())
	if !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported variable type",
			Detail: fmt.Sprintf("The keyword %q is not a valid variable type. Supported types are: "+
				"int, float, string, mode, virtual_input, physical_input.", traversal.RootName()),
			Subject: expr.Range().Ptr(),
		})
		return 0, diags
	}
	return t, diags
}

// ctyType returns the cty type used to check default value conformance.
func (t VariableType) ctyType() cty.Type {
	switch t {
	case TypeInt, TypeFloat:
		return cty.Number
	case TypeString, TypeMode:
		return cty.String
	default:
		return cty.NilType
	}
}
