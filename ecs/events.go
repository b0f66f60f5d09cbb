package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// CameraEventKind identifies camera event types.
type CameraEventKind string

const (
	CameraEventLockReleased   CameraEventKind = "lock_released"
	CameraEventConfigReloaded CameraEventKind = "config_reloaded"
	CameraEventConfigRejected CameraEventKind = "config_rejected"
	CameraEventScriptFailed   CameraEventKind = "script_failed"
)

// CameraEvent is emitted by the camera systems. Target is the lock target for
// lock events; Err carries the cause of rejections and failures.
type CameraEvent struct {
	Camera Entity
	Kind   CameraEventKind
	Target Entity
	Err    error
}

// PushCameraEvent queues a camera event under its kind.
func (q *EventQueue) PushCameraEvent(evt CameraEvent) {
	q.Push(Event{Type: string(evt.Kind), Data: evt})
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
