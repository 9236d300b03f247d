//go:build dev
// +build dev

package logger

import (
	"fmt"
	"time"
)

func HandleError(err error) {
	fmt.Printf("%s [dev] error: %v\n", time.Now().Format(time.TimeOnly), err)
}

func HandleLog(format string, args ...interface{}) {
	fmt.Printf("%s [dev] %s\n", time.Now().Format(time.TimeOnly), fmt.Sprintf(format, args...))
}
