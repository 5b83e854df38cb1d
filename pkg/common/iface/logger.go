package iface

// Actor represents different actors in the system for color-coded logging
type Actor string

const (
	ActorSystem    Actor = "SYSTEM"    // Process setup, file I/O
	ActorSender    Actor = "SENDER"    // Transfers signed by the funded account
	ActorChain     Actor = "CHAIN"     // RPC queries: balances, receipts
	ActorConfig    Actor = "CONFIG"    // Environment and settings resolution
	ActorTelemetry Actor = "TELEMETRY" // Run counters
)

type Logger interface {
	Title(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)

	// Actor-based methods for color-coded logging
	TitleWithActor(actor Actor, msg string, args ...any)
	InfoWithActor(actor Actor, msg string, args ...any)
	WarnWithActor(actor Actor, msg string, args ...any)
	ErrorWithActor(actor Actor, msg string, args ...any)
	DebugWithActor(actor Actor, msg string, args ...any)
}
