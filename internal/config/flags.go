package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
)

// NetAddress is a flag.Value that validates listen addresses as they are
// parsed, so a mistyped -a flag fails at startup instead of at Listen time.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags reads the command line into a StructuredConfig. Every field left
// at its zero value here can still be filled by the environment or the JSON
// file during the merge step.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-f audit export directory path
//	-d database DSN
//	-c/-config json file path with configs
//	-password-hash-key password hash key
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key request integrity hash key
//	-engine-key ciphertext engine input key
//	-gateway-secret decryption gateway shared secret
//	-gateway-salt callback key derivation salt
//	-gateway-deadline default decryption deadline (e.g., "5m")
//	-run-frequency minimum interval between payroll runs (e.g., "720h")
//	-sweep-interval decryption sweeper period (e.g., "30s")
//	-due-check-interval run-due watcher period (e.g., "1m")
func ParseFlags() *StructuredConfig {
	cfg := &StructuredConfig{}
	var httpAddr, grpcAddr NetAddress

	flag.Var(&httpAddr, "a", "HTTP listen address host:port")
	flag.Var(&grpcAddr, "grpc-address", "gRPC listen address host:port")
	flag.StringVar(&cfg.Storage.Files.AuditDir, "f", "", "Audit export directory path")
	flag.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	flag.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	flag.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&cfg.App.PasswordHashKey, "password-hash-key", "", "Password hash key")
	flag.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token lifetime (e.g. 1h)")
	flag.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	flag.StringVar(&cfg.App.HashKey, "hash-key", "", "Request integrity hash key")
	flag.StringVar(&cfg.Engine.InputKey, "engine-key", "", "Ciphertext engine input key")
	flag.StringVar(&cfg.Gateway.SharedSecret, "gateway-secret", "", "Decryption gateway shared secret")
	flag.StringVar(&cfg.Gateway.KeySalt, "gateway-salt", "", "Callback key derivation salt")
	flag.DurationVar(&cfg.Gateway.DefaultDeadline, "gateway-deadline", 0, "Default decryption deadline (e.g. 5m)")
	flag.DurationVar(&cfg.Payroll.RunFrequency, "run-frequency", 0, "Minimum interval between payroll runs (e.g. 720h)")
	flag.DurationVar(&cfg.Workers.SweepInterval, "sweep-interval", 0, "Decryption sweeper period (e.g. 30s)")
	flag.DurationVar(&cfg.Workers.DueCheckInterval, "due-check-interval", 0, "Run-due watcher period (e.g. 1m)")

	flag.Parse()

	cfg.Server.HTTPAddress = httpAddr.String()
	cfg.Server.GRPCAddress = grpcAddr.String()

	return cfg
}

// String renders the address as host:port. A zero NetAddress renders as the
// empty string so the merge step can fill the address from another source.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses a host:port value. The port must be a positive integer and the
// host must be "localhost" or a literal IP (IPv6 in brackets). Hostnames are
// rejected so a typo cannot silently turn into a DNS lookup at listen time.
func (a *NetAddress) Set(s string) error {
	host, portRaw, err := net.SplitHostPort(s)
	if err != nil {
		return err
	}

	port, err := strconv.Atoi(portRaw)
	if err != nil {
		return err
	}
	if port < 1 {
		return errors.New("port must be positive")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("host must be localhost or an IP address")
	}

	a.Host = host
	a.Port = port
	return nil
}
