package remote

import (
	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

func UnavailableError(err error) error {
	return &stagerr.Error{
		Type: stagerr.User,
		Help: `Cannot contact the repository manager

To service this request, we need to ask the repository manager for
some information. But we can't connect to it at present.

This may be because it's not running at all, is temporarily
unreachable, or is sitting behind a proxy or firewall that is
rejecting the connection.

Check that the URL is right (the --url flag, or the STAGECTL_URL
environment variable), then verify the server is up:

    stagectl check

If the server is up but slow, waiting a few seconds and trying the
operation again often suffices.

`,
		Err: err,
	}
}

func IncompatibleVersionError(err error) error {
	return &stagerr.Error{
		Type: stagerr.User,
		Help: `The repository manager's version does not satisfy the constraint

    ` + err.Error() + `

stagectl drives the staging workflow through the manager's staging
API, and the version it reported is outside the range this check was
asked for. Either upgrade the server, or loosen the constraint passed
to 'stagectl check'.

`,
		Err: err,
	}
}
