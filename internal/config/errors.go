package config

import "errors"

var errInvalidGrid = errors.New("config: crop rows/cols must be positive")
