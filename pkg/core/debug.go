package core

import "log"

// DebugMode enables trace output of cascade application.
var DebugMode = false

// SetDebugMode enables or disables cascade tracing.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

func debugf(format string, args ...any) {
	if DebugMode {
		log.Printf("[cascade] "+format, args...)
	}
}
