// Package logger wraps zap with a global sugared logger that writes to
// standard error, leaving standard output free for command results.
// Loggers travel through a context (ToContext/FromContext).
package logger
