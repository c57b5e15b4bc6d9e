// Package logging provides opt-in file logging with rotation for optindex.
//
// With --debug, structured JSON logs are written to ~/.optindex/logs/ so a
// picker session or a tool-server run can be inspected afterwards. Without
// it, commands log nothing beyond warnings on stderr.
//
// The tool server must keep stdout free for JSON-RPC, so SetupQuiet never
// writes to stdout or stderr.
package logging
