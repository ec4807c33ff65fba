package userctl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, tty bool, answers ...string) {
	t.Helper()
	oldRead, oldTTY := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTTY })

	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, "s3cret", "s3cret")
	var out bytes.Buffer

	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, "s3cret", pw)
	require.Contains(t, out.String(), "Repeat password: ")
	require.NotContains(t, out.String(), "s3cret")
}

func TestGetPassword_Mismatch(t *testing.T) {
	stubTerminal(t, true, "one", "two")

	_, err := GetPassword(&bytes.Buffer{})
	require.ErrorIs(t, err, errPasswordMismatch)
}

func TestGetPassword_ReadError(t *testing.T) {
	stubTerminal(t, true)

	_, err := GetPassword(&bytes.Buffer{})
	require.Error(t, err)
}

func TestGetPassword_Env(t *testing.T) {
	stubTerminal(t, false)
	t.Setenv(PasswordEnv, "from-env")

	pw, err := GetPassword(&bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "from-env", pw)
}

func TestGetPassword_EnvEmpty(t *testing.T) {
	stubTerminal(t, false)
	t.Setenv(PasswordEnv, "")

	_, err := GetPassword(&bytes.Buffer{})
	require.Error(t, err)
}
