package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question on out and reads the answer from in.
// An empty answer counts as yes. End of input counts as no. Returns
// ctx.Err() if ctx ends before an answer is read.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, message string) (bool, error) {
	fmt.Fprintf(out, "%s [Y/n]: ", message)

	// The read cannot be interrupted; it is abandoned on cancellation.
	answer := make(chan string, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			close(answer)
			return
		}
		answer <- line
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(out)
		return false, ctx.Err()
	case line, ok := <-answer:
		if !ok {
			fmt.Fprintln(out)
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
