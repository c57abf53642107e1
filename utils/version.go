package utils

import (
	"fmt"
)

const (
	Version = "0.3"
)

// VersionString identifies the engine in dumps and CLI output.
var VersionString = fmt.Sprintf("flyingsaucer-go %s", Version)
