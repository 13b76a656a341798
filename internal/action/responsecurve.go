package action

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jmriego/gremlin/internal/xmlutil"
)

// CurvePoint is one control point of a response curve, both coordinates
// in [-1, 1].
type CurvePoint struct {
	X float64
	Y float64
}

// ResponseCurve reshapes an axis response through a set of control points.
type ResponseCurve struct {
	// Mapping names the interpolation: "cubic-spline" or "piecewise-linear".
	Mapping string

	Points []CurvePoint
}

func (a *ResponseCurve) Tag() string { return "response-curve" }

func (a *ResponseCurve) FromXML(e *etree.Element) error {
	mapping, err := xmlutil.Attr(e, "mapping")
	if err != nil {
		return err
	}
	switch mapping {
	case "cubic-spline", "piecewise-linear":
	default:
		return fmt.Errorf("response-curve: invalid mapping %q", mapping)
	}

	points := a.Points[:0]
	for _, child := range e.ChildElements() {
		if child.Tag != "point" {
			return fmt.Errorf("response-curve: unexpected child element <%s>", child.Tag)
		}
		x, err := xmlutil.FloatAttr(child, "x")
		if err != nil {
			return err
		}
		y, err := xmlutil.FloatAttr(child, "y")
		if err != nil {
			return err
		}
		points = append(points, CurvePoint{X: x, Y: y})
	}

	a.Mapping = mapping
	a.Points = points
	return nil
}

func (a *ResponseCurve) ToXML() *etree.Element {
	e := etree.NewElement("response-curve")
	e.CreateAttr("mapping", a.Mapping)
	for _, p := range a.Points {
		point := e.CreateElement("point")
		point.CreateAttr("x", strconv.FormatFloat(p.X, 'g', -1, 64))
		point.CreateAttr("y", strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	return e
}
