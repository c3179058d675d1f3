// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder on stdout,
//   - an optional rotating JSON log file (lumberjack) teed with the console,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and leveled helpers (Info, DebugKV, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, so the name and
// fields attached by the daemon follow every scheduler and delivery call.
package logger
