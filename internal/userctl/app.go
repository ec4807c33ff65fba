// Package userctl implements the operator command that creates accounts
// directly in the store, bypassing the HTTP API but not the user service.
package userctl

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/usersvc/internal/flagx"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/services"
)

// ConfigArgs are the flags userctl forwards to the server config loader.
var ConfigArgs = []string{"-c", "-config", "-env", "-d"}

type Options struct {
	Username  string
	Firstname string
	Lastname  string
	Fullname  string
	Status    string
}

// ParseArgs reads the account flags:
//
//	-u string   username (required)
//	-f string   first name (required)
//	-l string   last name
//	-n string   full name (defaults to "first last")
//	-r string   status (defaults to "user")
func ParseArgs(args []string) (Options, error) {
	args = flagx.FilterArgs(args, []string{"-u", "-f", "-l", "-n", "-r"})

	var o Options
	fs := flag.NewFlagSet("userctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&o.Username, "u", "", "username")
	fs.StringVar(&o.Firstname, "f", "", "first name")
	fs.StringVar(&o.Lastname, "l", "", "last name")
	fs.StringVar(&o.Fullname, "n", "", "full name")
	fs.StringVar(&o.Status, "r", "", "status")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	if o.Username == "" || o.Firstname == "" {
		return Options{}, fmt.Errorf("usage: userctl -u <username> -f <firstname> [-l lastname] [-n fullname] [-r status]")
	}

	return o, nil
}

// Registrar is satisfied by *services.UserService.
type Registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

// CreateUser registers the account described by o and reports it on w.
func CreateUser(ctx context.Context, r Registrar, o Options, password string, w io.Writer) error {
	user, err := r.Register(ctx, services.RegisterInput{
		Firstname: o.Firstname,
		Lastname:  o.Lastname,
		Fullname:  o.Fullname,
		Username:  o.Username,
		Password:  password,
		Status:    o.Status,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "created user id=%d username=%s fullname=%q status=%s\n",
		user.ID, user.Username, user.Fullname, user.Status)
	return err
}
