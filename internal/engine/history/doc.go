// Package history provides the linear action stack backing the
// interactive session's undo of accept/reject decisions.
package history
