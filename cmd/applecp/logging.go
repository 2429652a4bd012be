package main

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("applecp")

var stderrFormat = logging.MustStringFormatter(
	`%{color}applecp ▶ %{level:.7s} %{message}%{color:reset}`,
)

func setupLogging(defaultLevel logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)

	leveled := logging.AddModuleLevel(backend)
	if level, err := logging.LogLevel(os.Getenv("APPLECP_LOG_LEVEL")); err == nil {
		leveled.SetLevel(level, "applecp")
	} else {
		leveled.SetLevel(defaultLevel, "applecp")
	}

	logging.SetBackend(leveled)
}
