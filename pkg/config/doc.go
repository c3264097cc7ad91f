// Package config defines the typed policy configuration consumed by the
// reply-governance engine.
//
// # Overview
//
// The policy file is YAML. Loading applies defaults, then validates every
// field against closed ranges; all violations are collected into a single
// ValidationError so the operator can fix the file in one pass. An invalid
// policy is fatal at startup and is never partially applied.
//
// # Usage
//
//	cfg, err := config.LoadWithEnvOverrides("policy.yaml")
//	if err != nil {
//	    // startup failure: report and exit
//	}
//
// Environment variables named REPLYGATE_SECTION_FIELD override file values.
//
// # Hot Reload
//
// Watcher observes the policy file with fsnotify and invokes a reload
// callback after a debounce interval. A reload that fails validation keeps
// the previous configuration in effect.
package config
