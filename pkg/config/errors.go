package config

import "errors"

var (
	// ErrParsingConfig indicates the environment could not be parsed into the struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrEnvFileNotFound indicates an explicitly named .env file could not be read.
	ErrEnvFileNotFound = errors.New("env file not found")

	// ErrNilPointer indicates a nil pointer was passed to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
