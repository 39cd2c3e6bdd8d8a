package ecs

// UpdateFrame is passed to every system during one Scheduler pass.
type UpdateFrame struct {
	Number    uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
