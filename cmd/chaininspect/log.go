package main

import (
	"github.com/btcsuite/btclog"

	"github.com/btcgateway/chainmodel/build"
)

var (
	logWriter = &build.LogWriter{}

	backendLog = btclog.NewBackend(logWriter)

	chinLog = build.NewSubLogger("CHIN", backendLog.Logger)
)

// subsystemLoggers maps each subsystem identifier to its associated logger.
// chaininspect is a single-binary tool with one subsystem, but the map
// follows the shape every subsystem logger in the surrounding stack expects.
var subsystemLoggers = map[string]btclog.Logger{
	"CHIN": chinLog,
}

type logManager struct{}

func (logManager) SubLoggers() build.SubLoggers {
	loggers := make(build.SubLoggers, len(subsystemLoggers))
	for id, logger := range subsystemLoggers {
		loggers[id] = logger
	}
	return loggers
}

func (logManager) SupportedSubsystems() []string {
	ids := make([]string, 0, len(subsystemLoggers))
	for id := range subsystemLoggers {
		ids = append(ids, id)
	}
	return ids
}

func (logManager) SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

func (l logManager) SetLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		l.SetLogLevel(subsystemID, logLevel)
	}
}
