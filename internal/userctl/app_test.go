package userctl

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	o, err := ParseArgs([]string{"-c", "cfg.json", "-u", "root", "-f", "Ada", "-l", "Lovelace", "-r", "admin", "-d", "postgres://x"})
	require.NoError(t, err)
	assert.Equal(t, Options{Username: "root", Firstname: "Ada", Lastname: "Lovelace", Status: "admin"}, o)

	o, err = ParseArgs([]string{"-u=root", "-f=Ada", "-n=Countess"})
	require.NoError(t, err)
	assert.Equal(t, "Countess", o.Fullname)
}

func TestParseArgs_MissingRequired(t *testing.T) {
	_, err := ParseArgs([]string{"-u", "root"})
	require.Error(t, err)

	_, err = ParseArgs([]string{"-f", "Ada"})
	require.Error(t, err)
}

type fakeRegistrar struct {
	got services.RegisterInput
	err error
}

func (f *fakeRegistrar) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 1, Username: in.Username, Fullname: "Ada Lovelace", Status: "admin"}, nil
}

func TestCreateUser(t *testing.T) {
	r := &fakeRegistrar{}
	var out bytes.Buffer

	err := CreateUser(context.Background(), r, Options{Username: "root", Firstname: "Ada", Lastname: "Lovelace", Status: "admin"}, "pw", &out)
	require.NoError(t, err)

	assert.Equal(t, services.RegisterInput{Firstname: "Ada", Lastname: "Lovelace", Username: "root", Password: "pw", Status: "admin"}, r.got)
	assert.Contains(t, out.String(), "id=1")
	assert.NotContains(t, out.String(), "pw")
}

func TestCreateUser_Error(t *testing.T) {
	r := &fakeRegistrar{err: common.ErrConflict}

	err := CreateUser(context.Background(), r, Options{Username: "root", Firstname: "Ada"}, "pw", &bytes.Buffer{})
	require.True(t, errors.Is(err, common.ErrConflict))
}
