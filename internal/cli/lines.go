package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// eachLine calls fn with every line of r, without its line ending, until fn
// returns false or r is exhausted. Lines have no length limit, so one
// oversized command is still delivered as a single line.
func eachLine(r io.Reader, fn func(line string) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" || err == nil {
			if !fn(strings.TrimRight(line, "\r\n")) {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
