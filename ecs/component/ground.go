package component

import "github.com/milk9111/rtscamera/terrain"

// Ground is the walkable extent of an entity. Footprint is local to the
// entity's Transform position; Surface heights are added to its Y.
type Ground struct {
	Footprint terrain.Footprint
	Surface   terrain.Surface
}

var GroundComponent = NewComponent[Ground]()
