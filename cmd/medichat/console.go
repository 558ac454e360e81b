package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// console is the line-oriented terminal the non-TUI commands talk to.
type console struct {
	in  *bufio.Reader
	out io.Writer

	// secret reads a line without echo. Nil reads from in.
	secret func() (string, error)
}

func newTerminalConsole() *console {
	c := &console{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		c.secret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			return string(b), err
		}
	}
	return c
}

// readLine returns the next input line without its terminator. io.EOF is
// returned only when nothing was read.
func (c *console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *console) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	return c.readLine()
}

func (c *console) promptSecret(label string) (string, error) {
	if c.secret == nil {
		return c.prompt(label)
	}
	fmt.Fprintf(c.out, "%s: ", label)
	s, err := c.secret()
	fmt.Fprintln(c.out)
	return s, err
}

// confirm asks a y/n question. Anything but y or yes is a no.
func (c *console) confirm(question string) (bool, error) {
	answer, err := c.prompt(question + " (y/n)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "ya":
		return true, nil
	}
	return false, nil
}

func (c *console) println(a ...any) { fmt.Fprintln(c.out, a...) }

func (c *console) printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }
