// Package logtail reads the tail of crate's own log file for the in-app
// diagnostics view.
//
// # Overview
//
// Read extracts the last N lines of a file in one pass with a ring buffer, so
// memory stays proportional to N rather than to the file size. A missing file
// is not an error; it simply has no lines yet.
//
// Parse understands both logrus formatters crate can be configured with:
//
//	time="2026-01-02T15:04:05Z" level=warning msg="session watcher unavailable"
//	{"level":"error","msg":"request failed","time":"2026-01-02T15:04:05Z"}
//
// Levels are folded to debug, info, warn and error so the UI can pick one
// style per level. Anything else keeps the raw line as its message.
package logtail
