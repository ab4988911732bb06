// Package server runs the payroll service's transports: the HTTP API that
// operators and the decryption gateway talk to, and the gRPC health endpoint
// used by deployment probes.
//
// Both transports share one lifecycle: they start together, and the first OS
// signal or listener failure shuts both down gracefully.
package server
