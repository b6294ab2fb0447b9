// Package logging provides a simple leveled logging facade for the bot.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the process
//
// The log level is configured via the LOG_LEVEL environment variable
// (or DEBUG=true), the output format via LOG_FORMAT ("console" or "json").
package logging
