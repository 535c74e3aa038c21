package main

import "fmt"

// cmdError reports a CLI-level validation failure (a malformed flag value),
// distinct from an error surfaced by the kernel or controller packages
// (which never return one).
type cmdError struct {
	flag string
	msg  string
}

func (e *cmdError) Error() string {
	return fmt.Sprintf("--%s: %s", e.flag, e.msg)
}

func newCmdError(flag, msg string) error {
	return &cmdError{flag: flag, msg: msg}
}
