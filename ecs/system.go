package ecs

// System is a unit of per-frame behavior. Systems may declare Query and
// Singleton fields; the Scheduler initializes them on Register. Any other
// fields are private system state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during a single Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
