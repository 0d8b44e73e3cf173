package parameter

import "time"

// Engine - Tick loop
const (
	// TickRate is simulation ticks per second
	TickRate = 60

	// TickInterval is the wall-clock interval of one tick in the interactive loop
	TickInterval = time.Second / TickRate

	// FrameUpdateInterval is the render interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// MaxTickDt caps the dt handed to the controller after a stall
	MaxTickDt = 0.05

	// DefaultSimTicks is the headless run length
	DefaultSimTicks = 3600

	// DefaultSeed seeds target selection noise when none is given
	DefaultSeed = 1
)

// Engine - Telemetry
const (
	// TelemetryQueueSize is the fixed capacity of the telemetry ring buffer
	TelemetryQueueSize = 1024

	// TelemetryBufferMask is the bitmask for fast modulo operations (1024 - 1)
	TelemetryBufferMask = 1023
)

// Engine - Sandbox view
const (
	// ViewCellWidth and ViewCellHeight are world px per terminal column and row
	ViewCellWidth  = 10.0
	ViewCellHeight = 20.0

	// DriftNudge is how far the sandbox drift key lifts a platform
	DriftNudge = 24.0
)
