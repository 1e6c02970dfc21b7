package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm writes question plus a [y/N] hint to out and reports whether the
// reply read from in is y or yes. A missing reply is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	reply, err := readAnswer(in)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return true
	}
	return false
}

// readAnswer reads one reply ending at CR or LF. It reads byte by byte so
// nothing past the reply is consumed, and CR ends it under a raw terminal.
// Input that ends without a terminator still counts as a reply.
func readAnswer(in io.Reader) (string, error) {
	var sb strings.Builder
	b := make([]byte, 1)
	for {
		n, err := in.Read(b)
		if n == 1 {
			if b[0] == '\n' || b[0] == '\r' {
				return sb.String(), nil
			}
			sb.WriteByte(b[0])
		}
		switch {
		case errors.Is(err, io.EOF) && sb.Len() > 0:
			return sb.String(), nil
		case err != nil:
			return sb.String(), err
		}
	}
}
