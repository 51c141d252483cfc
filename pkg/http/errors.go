package http

import (
	"errors"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

var ErrorUnauthorized = &stagerr.Error{
	Type: stagerr.User,
	Help: `The request failed authentication

This most likely means your credentials are missing or incorrect.
Please supply a username and password, either by setting the
environment variables STAGECTL_USERNAME and STAGECTL_PASSWORD, or
using the arguments --username and --password with stagectl.

`,
	Err: errors.New("request failed authentication"),
}

func MakeNotFound(path string) *stagerr.Error {
	return &stagerr.Error{
		Type: stagerr.Missing,
		Help: `The thing you asked about doesn't exist on the server.

A staging repository that has been dropped, or fully released with
automatic cleanup, disappears from the server altogether; listing
what the profile holds with

    stagectl repos

may explain what happened to it. If the path below doesn't refer to
a repository at all, the server may be too old to know the endpoint:

    ` + path + `
`,
		Err: errors.New("not found: " + path),
	}
}
