package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// promptSecrets asks for one hidden answer per label on stdin. Echo stays off
// for the whole exchange. Swapped in tests.
var promptSecrets = func(out io.Writer, labels ...string) ([]string, error) {
	var answers []string
	err := withEchoDisabled(os.Stdin, func() error {
		var readErr error
		answers, readErr = readSecretLines(bufio.NewReader(os.Stdin), out, labels)
		return readErr
	})
	return answers, err
}

// readSecretLines prints each label and reads one line for it. A final line
// without a newline is accepted; running out of input before the last label
// is not.
func readSecretLines(reader *bufio.Reader, out io.Writer, labels []string) ([]string, error) {
	answers := make([]string, 0, len(labels))
	for _, label := range labels {
		fmt.Fprintf(out, "%s: ", label)
		line, err := reader.ReadString('\n')
		// The typed newline is not echoed.
		fmt.Fprintln(out)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("read %s: %w", strings.ToLower(label), err)
			}
			if line == "" {
				return nil, fmt.Errorf("read %s: %w", strings.ToLower(label), io.ErrUnexpectedEOF)
			}
		}
		answers = append(answers, strings.TrimRight(line, "\r\n"))
	}
	return answers, nil
}
