package testutil

import (
	"os"
	"testing"
)

// WithEnv sets an env var for the duration of the test scope and returns a
// cleanup func restoring the previous value. Used to point config and store
// lookups at temp directories.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	return func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// ConfigHome redirects both XDG and HOME lookups into dir and returns a
// cleanup func.
func ConfigHome(t *testing.T, dir string) func() {
	t.Helper()
	restoreXDG := WithEnv(t, "XDG_CONFIG_HOME", dir)
	restoreHome := WithEnv(t, "HOME", dir)
	return func() {
		restoreHome()
		restoreXDG()
	}
}
