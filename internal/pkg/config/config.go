// Package config abstracts configuration access behind a typed getter
// interface so the rest of the app never touches the config library directly.
package config

import (
	"io"
	"time"
)

// Config retrieves configuration values by key, converting them to the
// requested type. Missing keys yield the type's zero value.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt32 returns the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetSecond returns the value for key interpreted as a count of seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the value for key interpreted as a count of minutes.
	GetMinute(key string) time.Duration

	// GetHour returns the value for key interpreted as a count of hours.
	GetHour(key string) time.Duration

	// GetBinary returns the value for key decoded from base64.
	GetBinary(key string) []byte

	// GetArray returns the value for key split on commas.
	GetArray(key string) []string

	// GetMap returns the value for key parsed from "<k1>:<v1>,<k2>:<v2>" pairs.
	GetMap(key string) map[string]string
}
