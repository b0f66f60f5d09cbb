package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/terrain"
)

// NewGround spawns a ground entity. footprint is relative to position and
// surface heights are added to position's Y.
func NewGround(w *ecs.World, footprint terrain.Footprint, surface terrain.Surface, position mgl32.Vec3) (ecs.Entity, error) {
	if footprint == nil {
		return 0, fmt.Errorf("ground: %w", terrain.ErrNilFootprint)
	}
	if surface == nil {
		return 0, fmt.Errorf("ground: %w", terrain.ErrNilSurface)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		return 0, fmt.Errorf("ground: add ground tag: %w", err)
	}
	if err := ecs.Add(w, e, component.GroundComponent.Kind(), &component.Ground{
		Footprint: footprint,
		Surface:   surface,
	}); err != nil {
		return 0, fmt.Errorf("ground: add ground: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
	}); err != nil {
		return 0, fmt.Errorf("ground: add transform: %w", err)
	}
	return e, nil
}

// NewBox spawns a box whose top face is ground: width by depth in XZ, resting
// with its base at position.
func NewBox(w *ecs.World, width, depth, height float32, position mgl32.Vec3) (ecs.Entity, error) {
	return NewGround(w, terrain.CenteredRect(width, depth), terrain.Flat(height), position)
}

// NewHill spawns a sphere centred at position; the camera rests on
// its upper cap.
func NewHill(w *ecs.World, radius float32, position mgl32.Vec3) (ecs.Entity, error) {
	return NewGround(w, terrain.Circle{Radius: radius}, terrain.Dome{Radius: radius}, position)
}

// NewUnit spawns a non-ground object at position, such as a unit the camera
// can lock onto.
func NewUnit(w *ecs.World, position mgl32.Vec3) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
	}); err != nil {
		return 0, fmt.Errorf("unit: add transform: %w", err)
	}
	return e, nil
}
