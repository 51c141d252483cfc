package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

func TestMakeURL(t *testing.T) {
	router := NewAPIRouter()

	for _, tt := range []struct {
		name   string
		route  string
		params []string
		want   string
	}{
		{name: "no params", route: Status, want: "http://nexus.example.com/service/local/status"},
		{
			name:   "path variable",
			route:  Repository,
			params: []string{"repository", "comexample-1024"},
			want:   "http://nexus.example.com/service/local/staging/repository/comexample-1024",
		},
		{
			name:   "nested path variable",
			route:  RepositoryActivity,
			params: []string{"repository", "comexample-1024"},
			want:   "http://nexus.example.com/service/local/staging/repository/comexample-1024/activity",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			u, err := MakeURL("http://nexus.example.com", router, tt.route, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestMakeURLKeepsBasePath(t *testing.T) {
	u, err := MakeURL("https://oss.example.org/nexus", NewAPIRouter(), Profiles)
	require.NoError(t, err)
	assert.Equal(t, "https://oss.example.org/nexus/service/local/staging/profiles", u.String())
}

func TestMakeURLUnknownRoute(t *testing.T) {
	_, err := MakeURL("http://nexus.example.com", NewAPIRouter(), "NoSuchRoute")
	assert.Error(t, err)
}

func TestNegotiateContentType(t *testing.T) {
	// No Accept header gets the first preference.
	got := negotiateContentType(&http.Request{}, []string{"application/json", "text/plain"})
	assert.Equal(t, "application/json", got)

	// Accept headers that match nothing on offer get "".
	h := http.Header{}
	h.Add("Accept", "x-world/x-vrml")
	got = negotiateContentType(&http.Request{Header: h}, []string{"application/json"})
	assert.Equal(t, "", got)

	// Equal quality resolves by our preference order.
	h = http.Header{}
	h.Add("Accept", "text/plain,application/json")
	got = negotiateContentType(&http.Request{Header: h}, []string{"application/json", "text/plain"})
	assert.Equal(t, "application/json", got)

	// Higher quality beats preference order.
	h = http.Header{}
	h.Add("Accept", "application/json;q=0.5,text/plain;q=1.0")
	got = negotiateContentType(&http.Request{Header: h}, []string{"application/json", "text/plain"})
	assert.Equal(t, "text/plain", got)
}

func TestWriteErrorContentNegotiation(t *testing.T) {
	apiErr := &stagerr.Error{
		Type: stagerr.Missing,
		Help: "Halp text.",
		Err:  errors.New("not found: thing"),
	}

	// JSON-speaking clients get the structured error.
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	WriteError(rec, req, http.StatusNotFound, apiErr)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), `"type":"missing"`)

	// Plain-text clients get the help text.
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "text/plain")
	rec = httptest.NewRecorder()
	WriteError(rec, req, http.StatusNotFound, apiErr)
	assert.Equal(t, "Halp text.", rec.Body.String())
}

func TestErrorResponseStatusMapping(t *testing.T) {
	for _, tt := range []struct {
		errType  stagerr.Type
		wantCode int
	}{
		{errType: stagerr.Missing, wantCode: http.StatusNotFound},
		{errType: stagerr.User, wantCode: http.StatusUnprocessableEntity},
		{errType: stagerr.Server, wantCode: http.StatusInternalServerError},
	} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		ErrorResponse(rec, req, &stagerr.Error{Type: tt.errType, Err: errors.New("x")})
		assert.Equal(t, tt.wantCode, rec.Code)
	}
}
