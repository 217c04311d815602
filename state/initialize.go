package state

import (
	"time"

	"twc/common"
)

// newLocalEnv creates environment with mode left to configuration.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Mode:  common.InlineMode(-1),
	}
}

// ModeOverridden reports whether inline mode was requested on command line.
func (e *LocalEnv) ModeOverridden() bool {
	return e.Mode >= 0
}

// EffectiveMode returns inline mode from command line or configuration.
func (e *LocalEnv) EffectiveMode() common.InlineMode {
	switch {
	case e.ModeOverridden():
		return e.Mode
	case e.Cfg != nil:
		return e.Cfg.Compiler.Mode
	}
	return common.InlineModeNone
}
