package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// GroundTag marks an entity whose Ground surface the camera rests on. Units and
// props without it are ignored by the height sampler.
type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
