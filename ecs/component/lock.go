package component

// CameraLock makes the camera follow Target (an ecs.Entity) until the target
// loses its transform or dies.
type CameraLock struct {
	Target uint64
}

var CameraLockComponent = NewComponent[CameraLock]()
