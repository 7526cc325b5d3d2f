package util

import (
	"fmt"
	"io"
)

// Action prints actionMessage, runs f and prints OK when it succeeds.
func Action(w io.Writer, actionMessage string, f func() error) error {
	_, _ = fmt.Fprintln(w, actionMessage)
	if err := f(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "  OK")
	return nil
}
