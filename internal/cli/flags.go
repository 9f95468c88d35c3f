package cli

import (
	"time"

	"github.com/spf13/pflag"
)

// changedString returns a pointer to the flag's value only when the
// user set it, so unset flags translate to "keep the old value" in a
// session update.
func changedString(flags *pflag.FlagSet, name string, value *string) *string {
	if flags.Changed(name) {
		return value
	}
	return nil
}

// changedInt64 is changedString for int64 flags.
func changedInt64(flags *pflag.FlagSet, name string, value *int64) *int64 {
	if flags.Changed(name) {
		return value
	}
	return nil
}

// changedTime parses a time flag only when the user set it.
func changedTime(flags *pflag.FlagSet, name string, value string) (*time.Time, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	t, err := parseTimeFlag(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
