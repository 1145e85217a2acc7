package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdinIsTerminal is swapped out in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirmDestructive asks before a delete. Without a terminal on stdin the
// caller must pass --yes.
func confirmDestructive(yes bool, in io.Reader, out io.Writer, prompt string) error {
	if yes {
		return nil
	}
	if !stdinIsTerminal() {
		return fmt.Errorf("refusing to %s without confirmation: pass --yes", prompt)
	}
	_, _ = fmt.Fprintf(out, "Are you sure you want to %s? [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return fmt.Errorf("aborted")
}
