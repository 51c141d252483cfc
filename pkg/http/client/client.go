// Package client is the JSON-over-HTTP implementation of api.Service,
// speaking to the repository manager's staging API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stagecraft/stagectl/pkg/api"
	stagerr "github.com/stagecraft/stagectl/pkg/errors"
	transport "github.com/stagecraft/stagectl/pkg/http"
	"github.com/stagecraft/stagectl/pkg/http/httperror"
	"github.com/stagecraft/stagectl/pkg/staging"
)

// UserAgent identifies stagectl in the server's request log.
const UserAgent = "stagectl"

// Credentials is the HTTP Basic identity used to talk to the
// repository manager. The zero value sends no authentication at all,
// which some read-only endpoints accept.
type Credentials struct {
	Username string
	Password string
}

// Set applies the credentials to a request.
func (c Credentials) Set(req *http.Request) {
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}
}

type Client struct {
	client   *http.Client
	creds    Credentials
	router   *mux.Router
	endpoint string
}

var _ api.Service = &Client{}

func New(c *http.Client, router *mux.Router, endpoint string, creds Credentials) *Client {
	return &Client{
		client:   c,
		creds:    creds,
		router:   router,
		endpoint: endpoint,
	}
}

// dataEnvelope is the `{"data": ...}` wrapper the staging API puts
// around most payloads. The repository and activity endpoints return
// bare documents instead, so it is applied per call site.
type dataEnvelope struct {
	Data interface{} `json:"data"`
}

func (c *Client) ServerStatus(ctx context.Context) (staging.ServerStatus, error) {
	var res staging.ServerStatus
	err := c.get(ctx, &dataEnvelope{Data: &res}, transport.Status)
	return res, err
}

func (c *Client) Profiles(ctx context.Context) ([]staging.Profile, error) {
	var res []staging.Profile
	err := c.get(ctx, &dataEnvelope{Data: &res}, transport.Profiles)
	return res, err
}

func (c *Client) ProfileRepositories(ctx context.Context, profileID string) ([]staging.Repository, error) {
	var res []staging.Repository
	err := c.get(ctx, &dataEnvelope{Data: &res}, transport.ProfileRepositories, "profile", profileID)
	return res, err
}

func (c *Client) Repository(ctx context.Context, repositoryID string) (staging.Repository, error) {
	var res staging.Repository
	err := c.get(ctx, &res, transport.Repository, "repository", repositoryID)
	return res, err
}

func (c *Client) Activity(ctx context.Context, repositoryID string) ([]staging.Activity, error) {
	var res []staging.Activity
	err := c.get(ctx, &res, transport.RepositoryActivity, "repository", repositoryID)
	return res, err
}

func (c *Client) CloseRepositories(ctx context.Context, req staging.TransitionRequest) error {
	return c.postCommand(ctx, transport.BulkClose, req)
}

func (c *Client) PromoteRepositories(ctx context.Context, req staging.TransitionRequest) error {
	return c.postCommand(ctx, transport.BulkPromote, req)
}

func (c *Client) DropRepositories(ctx context.Context, req staging.TransitionRequest) error {
	return c.postCommand(ctx, transport.BulkDrop, req)
}

// --- Request helpers

// postCommand issues one bulk transition command. The request goes
// out exactly once; deciding whether a failure is worth a whole new
// command is the caller's business, not this layer's.
func (c *Client) postCommand(ctx context.Context, route string, req staging.TransitionRequest) error {
	return c.postWithBody(ctx, route, &dataEnvelope{Data: req})
}

func (c *Client) postWithBody(ctx context.Context, route string, body interface{}, urlParams ...string) error {
	u, err := transport.MakeURL(c.endpoint, c.router, route, urlParams...)
	if err != nil {
		return errors.Wrap(err, "constructing URL")
	}

	var bodyBytes []byte
	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
	}

	req, err := http.NewRequest("POST", u.String(), bytes.NewReader(bodyBytes))
	if err != nil {
		return errors.Wrapf(err, "constructing request %s", u)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.executeRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Command responses are either empty or an echo of the request;
	// nothing in them is needed to proceed.
	_, err = ioutil.ReadAll(resp.Body)
	return errors.Wrap(err, "reading response from server")
}

// get executes a GET against the staging API and unmarshals the
// response into dest, if dest is not nil.
func (c *Client) get(ctx context.Context, dest interface{}, route string, urlParams ...string) error {
	u, err := transport.MakeURL(c.endpoint, c.router, route, urlParams...)
	if err != nil {
		return errors.Wrap(err, "constructing URL")
	}

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return errors.Wrapf(err, "constructing request %s", u)
	}
	req = req.WithContext(ctx)

	resp, err := c.executeRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return errors.Wrap(err, "decoding response from server")
		}
	}
	return nil
}

func (c *Client) executeRequest(req *http.Request) (*http.Response, error) {
	c.creds.Set(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "executing HTTP request")
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent, http.StatusAccepted:
		return resp, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		resp.Body.Close()
		return resp, transport.ErrorUnauthorized
	case http.StatusNotFound:
		resp.Body.Close()
		return resp, transport.MakeNotFound(req.URL.Path)
	default:
		defer resp.Body.Close()
		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return resp, errors.Wrap(err, "reading response body of error")
		}
		// Use the content type to discriminate between a structured
		// stagerr.Error and any old error page from a proxy.
		if strings.HasPrefix(resp.Header.Get(http.CanonicalHeaderKey("Content-Type")), "application/json") {
			var niceError stagerr.Error
			if err := json.Unmarshal(body, &niceError); err == nil && niceError.Err != nil {
				return resp, &niceError
			}
			// just in case it's JSON but not one of our own errors
		}
		return resp, &httperror.APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
}
