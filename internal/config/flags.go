package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-d local database DSN
//	-state-driver sync-state backend (memory, bolt, sqlite)
//	-state-path bbolt file path
//	-u remote sync server URL
//	-c/-config json file path with configs
//	-strategy auto-resolve strategy (manual, local-wins, remote-wins)
//	-retention-days resolved conflict retention in days
//	-request-timeout outbound request timeout (e.g., "10s")
//	-sync-timeout sync run timeout (e.g., "1m")
//	-sync-interval periodic sync interval (e.g., "5m")
//	-probe-interval connectivity probe interval (e.g., "15s")
//	-cleanup-interval resolved history cleanup interval (e.g., "24h")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("field-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, stateDriver, statePath string
	var remoteURL, jsonConfigPath, strategy string
	var retentionDays int
	var requestTimeout, syncTimeout time.Duration
	var syncInterval, probeInterval, cleanupInterval time.Duration

	fs.Var(&serverAddress, "a", "Control API address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Local database DSN")
	fs.StringVar(&stateDriver, "state-driver", "", "Sync-state backend: memory, bolt or sqlite")
	fs.StringVar(&statePath, "state-path", "", "bbolt state file path")
	fs.StringVar(&remoteURL, "u", "", "Remote sync server URL")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&strategy, "strategy", "", "Auto-resolve strategy: manual, local-wins or remote-wins")
	fs.IntVar(&retentionDays, "retention-days", 0, "Resolved conflict retention in days")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 10s)")
	fs.DurationVar(&syncTimeout, "sync-timeout", 0, "Sync run timeout (e.g., 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 15s)")
	fs.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Resolved history cleanup interval (e.g., 24h)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AutoResolveStrategy:   strategy,
			ResolvedRetentionDays: retentionDays,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			State: State{Driver: stateDriver, Path: statePath},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:    remoteURL,
			RequestTimeout: requestTimeout,
			SyncTimeout:    syncTimeout,
		},
		Workers: Workers{
			SyncInterval:    syncInterval,
			ProbeInterval:   probeInterval,
			CleanupInterval: cleanupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
