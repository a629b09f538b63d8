package server

// Build-time metadata variables set via LD flags
var (
	BuildServiceName    = "agent-catalog"
	BuildServiceVersion = "dev"
	BuildCommit         = "unknown"
	BuildDate           = "unknown"
)
