package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// The console reads everything, commands and prompt answers alike, from one
// *bufio.Reader. A script piped to stdin is therefore consumed strictly line
// by line: "upload\nQ1 Report\n/tmp/q1.pdf\n" runs the upload command and
// answers both of its prompts.

// Terminal seams, swapped in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readLine returns the next line without its line ending. A last line that
// lacks a newline is still returned; io.EOF means nothing was left.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskLine writes "question: " to w and returns the trimmed answer.
func AskLine(r *bufio.Reader, w io.Writer, question string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", question); err != nil {
		return "", err
	}
	answer, err := readLine(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// AskPassword reads a password with echo off when stdin is a terminal. For a
// piped script the next line of r is the password. The caller wipes the
// result.
func AskPassword(r *bufio.Reader, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
