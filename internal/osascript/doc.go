// Package osascript builds, runs and decodes JavaScript for Automation
// scripts executed by the macOS osascript interpreter.
//
// Caller-supplied text reaches a script only through Quote or Script.Linef, which escape it for a double-quoted string literal.
package osascript
