package userctl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PasswordEnv is read when stdin is not a terminal.
const PasswordEnv = "USERCTL_PASSWORD"

var errPasswordMismatch = errors.New("passwords do not match")

// test seams for the terminal
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetPassword reads the new account's password. On a terminal it prompts
// twice without echo; otherwise it takes the value of PasswordEnv.
func GetPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())

	if !isTerminal(fd) {
		pw := os.Getenv(PasswordEnv)
		if pw == "" {
			return "", fmt.Errorf("stdin is not a terminal and %s is empty", PasswordEnv)
		}
		return pw, nil
	}

	first, err := prompt(w, fd, "Password: ")
	if err != nil {
		return "", err
	}
	second, err := prompt(w, fd, "Repeat password: ")
	if err != nil {
		return "", err
	}

	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}

func prompt(w io.Writer, fd int, text string) (string, error) {
	if _, err := fmt.Fprint(w, text); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
