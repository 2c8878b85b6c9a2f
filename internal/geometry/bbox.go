package geometry

import (
	"fmt"
	"math"
)

// BoundingBox represents a 2D bounding box in a sketch plane
type BoundingBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the width (X dimension) of the bounding box
func (b *BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the height (Y dimension) of the bounding box
func (b *BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Center returns the midpoint of the bounding box
func (b *BoundingBox) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Corners returns the four corners counter-clockwise starting at the minimum
func (b *BoundingBox) Corners() [4]Vec2 {
	return [4]Vec2{
		{b.MinX, b.MinY},
		{b.MaxX, b.MinY},
		{b.MaxX, b.MaxY},
		{b.MinX, b.MaxY},
	}
}

// Extend grows the bounding box to contain p
func (b *BoundingBox) Extend(p Vec2) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// CalculateBoundingBox calculates the bounding box of a set of points
func CalculateBoundingBox(points []Vec2) (*BoundingBox, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points provided")
	}

	// Initialize with first point
	bbox := &BoundingBox{
		MinX: points[0].X,
		MinY: points[0].Y,
		MaxX: points[0].X,
		MaxY: points[0].Y,
	}

	for _, p := range points[1:] {
		bbox.Extend(p)
	}

	return bbox, nil
}
