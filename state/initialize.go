package state

import "time"

// newLocalEnv creates a new LocalEnv instance with default values. Logger and
// configuration are set later, after command line is parsed.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}
