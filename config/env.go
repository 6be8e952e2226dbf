package config

import (
	"os"
	"strconv"
)

// getString returns the first non-empty variable among names, or "".
func getString(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// getFloat extracts a float from name. ok is false when the variable is
// unset; err is set when it is present but not a number.
func getFloat(name string) (value float64, ok bool, err error) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, err
	}
	return value, true, nil
}
