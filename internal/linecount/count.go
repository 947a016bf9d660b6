// Package linecount counts the lines of a source file that carry content.
package linecount

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned for files that are not valid UTF-8.
var ErrNotText = errors.New("not valid utf-8 text")

// Count returns the number of lines in r whose content is not all whitespace.
// Lines end at \n, \r\n or a bare \r and may be of any length.
func Count(r io.Reader) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	n := 0
	lineNum := 0
	for {
		line, err := readLine(br)
		if len(line) > 0 {
			lineNum++
			if !utf8.ValidString(line) {
				return 0, fmt.Errorf("line %d: %w", lineNum, ErrNotText)
			}
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// CountFile opens path and counts its non-blank lines.
func CountFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Count(f)
}

// FirstContentLine returns the 1-based number of the first non-blank line,
// or 1 when the file has none.
func FirstContentLine(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	lineNum := 0
	for {
		line, err := readLine(br)
		if len(line) > 0 {
			lineNum++
			if strings.TrimSpace(line) != "" {
				return lineNum, nil
			}
		}
		if err == io.EOF {
			return 1, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// readLine returns the next line including its terminator. Like
// ReadString it returns the trailing partial line together with io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		c, err := br.ReadByte()
		if err != nil {
			return b.String(), err
		}
		b.WriteByte(c)
		switch c {
		case '\n':
			return b.String(), nil
		case '\r':
			if next, err := br.Peek(1); err == nil && next[0] == '\n' {
				br.ReadByte()
				b.WriteByte('\n')
			}
			return b.String(), nil
		}
	}
}
