package component

import (
	"github.com/milk9111/rtscamera/camera"
	"github.com/milk9111/rtscamera/input"
)

// Camera binds a camera controller to an entity. Input is rebuilt every frame
// by the controls system and consumed by the camera system.
type Camera struct {
	Camera *camera.Camera
	// ConfigName is the prefab file the config was loaded from; empty when the
	// config was built in code and should not hot reload.
	ConfigName string
	Input      input.FrameInput
}

var CameraComponent = NewComponent[Camera]()
