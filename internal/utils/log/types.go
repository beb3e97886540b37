package log

import (
	charmlog "github.com/charmbracelet/log"
)

type (
	Level     = charmlog.Level
	Styles    = charmlog.Styles
	Formatter = charmlog.Formatter
)

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel
)

const (
	TextFormatter   = charmlog.TextFormatter
	JSONFormatter   = charmlog.JSONFormatter
	LogfmtFormatter = charmlog.LogfmtFormatter
)
