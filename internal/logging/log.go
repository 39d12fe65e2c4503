// Package logging wires up the btclog subsystem loggers shared by every
// package in this module, following the convention used throughout the
// btcsuite family (btcd, lnd): one named logger per subsystem, a single
// backend, and a SetLogLevel entry point the CLI's --debuglevel flag calls
// into.
package logging

import (
	"os"

	"github.com/btcsuite/btclog"
)

var backend = btclog.NewBackend(os.Stdout)

// Subsystem tags, printed as a prefix on every log line. SetLogLevel
// applies one level to all of them.
const (
	SubsystemSigner      = "SGNR"
	SubsystemCoordinator = "CORD"
	SubsystemTransport   = "XPRT"
	SubsystemHTTP        = "HTTP"
	SubsystemStore       = "STOR"
)

var (
	SignerLog      = backend.Logger(SubsystemSigner)
	CoordinatorLog = backend.Logger(SubsystemCoordinator)
	TransportLog   = backend.Logger(SubsystemTransport)
	HTTPLog        = backend.Logger(SubsystemHTTP)
	StoreLog       = backend.Logger(SubsystemStore)
)

var subsystems = map[string]btclog.Logger{
	SubsystemSigner:      SignerLog,
	SubsystemCoordinator: CoordinatorLog,
	SubsystemTransport:   TransportLog,
	SubsystemHTTP:        HTTPLog,
	SubsystemStore:       StoreLog,
}

// SetLogLevel sets the logging level for every known subsystem.
func SetLogLevel(levelString string) {
	level, ok := btclog.LevelFromString(levelString)
	if !ok {
		level = btclog.LevelInfo
	}
	for _, logger := range subsystems {
		logger.SetLevel(level)
	}
}
