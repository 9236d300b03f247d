//go:build !dev
// +build !dev

package logger

import "log"

func HandleError(err error) {
	log.Println("sentiment: error:", err)
}

// HandleLog is silent outside dev builds
func HandleLog(format string, args ...interface{}) {}
