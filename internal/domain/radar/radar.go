// Package radar defines market segment score profiles and the polar layout
// used to draw them as closed polygons.
package radar

import (
	"fmt"
	"math"
	"strings"
)

// Segment is a named group of respondents with one average score per
// attribute. The name carries the sample size, e.g. "Fitness Enthusiasts (200)".
type Segment struct {
	Name   string
	Scores []float64
}

// Chart is a set of segments compared over the same attribute labels.
// Segment order is the drawing and legend order.
type Chart struct {
	Title    string
	Labels   []string
	Segments []Segment
}

// Point is one polygon vertex in polar coordinates.
type Point struct {
	Angle float64
	Value float64
}

// Validate checks that every segment has exactly one score per label.
func (c Chart) Validate() error {
	if len(c.Labels) == 0 {
		return fmt.Errorf("%w: no attribute labels", ErrValidation)
	}
	for i, l := range c.Labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("%w: label %d is empty", ErrValidation, i)
		}
	}
	if len(c.Segments) == 0 {
		return fmt.Errorf("%w: no segments", ErrValidation)
	}
	for _, s := range c.Segments {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: segment without a name", ErrValidation)
		}
		if len(s.Scores) != len(c.Labels) {
			return fmt.Errorf("%w: segment %q has %d scores for %d labels", ErrValidation, s.Name, len(s.Scores), len(c.Labels))
		}
		for j, v := range s.Scores {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: segment %q score for %q is not finite", ErrValidation, s.Name, c.Labels[j])
			}
		}
	}
	return nil
}

// Angles returns n angles evenly spaced over [0, 2π), starting at 0.
func Angles(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return out
}

// Close pairs angles with values and repeats the first vertex at the end so
// the outline returns to its start. It returns ErrValidation when the
// lengths differ or are zero.
func Close(angles, values []float64) ([]Point, error) {
	if len(angles) == 0 || len(angles) != len(values) {
		return nil, fmt.Errorf("%w: %d angles for %d values", ErrValidation, len(angles), len(values))
	}
	pts := make([]Point, 0, len(angles)+1)
	for i := range angles {
		pts = append(pts, Point{Angle: angles[i], Value: values[i]})
	}
	return append(pts, pts[0]), nil
}

// Polygons validates the chart and returns one closed polygon per segment,
// in segment order.
func (c Chart) Polygons() ([][]Point, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	angles := Angles(len(c.Labels))
	out := make([][]Point, len(c.Segments))
	for i, s := range c.Segments {
		pts, err := Close(angles, s.Scores)
		if err != nil {
			return nil, err
		}
		out[i] = pts
	}
	return out, nil
}

// MaxScore returns the largest score across all segments, or 0 when there
// are none.
func (c Chart) MaxScore() float64 {
	m := 0.0
	for _, s := range c.Segments {
		for _, v := range s.Scores {
			m = math.Max(m, v)
		}
	}
	return m
}
