package component

// CameraScript drives a camera's targets from a tengo script. Bumping
// Revision makes the script recompile on the next frame.
type CameraScript struct {
	Path     string
	Disabled bool
	Revision int
}

var CameraScriptComponent = NewComponent[CameraScript]()
