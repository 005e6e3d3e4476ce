// Package ui provides styled terminal output for sysmon's CLI
// commands.
//
// The full-screen dashboard does its own rendering; this package covers
// everything printed around it: status lines before the dashboard
// starts, the shutdown notice after it exits, and the messages from
// init and snapshot.
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green)  - successful operations
//	ColorError   (red)    - failures
//	ColorWarning (yellow) - warnings
//	ColorInfo    (cyan)   - informational messages
//	ColorMuted   (gray)   - secondary text
//
// All helpers return strings so callers decide where output goes.
package ui
