package server

// Server is the lifecycle contract of the payroll transport bundle: the HTTP
// API and the gRPC health endpoint start and stop together.
type Server interface {
	// RunServer starts every enabled transport and blocks until an OS
	// signal or a listener failure stops them.
	RunServer()

	// Shutdown gracefully stops all transports and releases their
	// listeners.
	Shutdown()
}
