// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with console or JSON encoding,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level and format parsing used by the configuration layer,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Services and the tick loop accept a context and extract the logger from it,
// so every log line carries the component name that produced it.
package logger
