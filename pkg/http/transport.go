// Package http holds the wire-level pieces shared by the client and
// by test servers: the named routes of the staging API, URL
// construction, and the JSON error envelope.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sort"

	"github.com/golang/gddo/httputil/header"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

// NewAPIRouter declares the staging API's routes. The client resolves
// request URLs against it, and test servers mount handlers on it, so
// both sides agree on paths by construction.
func NewAPIRouter() *mux.Router {
	r := mux.NewRouter()

	r.NewRoute().Name(Status).Methods("GET").Path("/service/local/status")

	r.NewRoute().Name(Profiles).Methods("GET").Path("/service/local/staging/profiles")
	r.NewRoute().Name(ProfileRepositories).Methods("GET").Path("/service/local/staging/profile_repositories/{profile}")
	r.NewRoute().Name(Repository).Methods("GET").Path("/service/local/staging/repository/{repository}")
	r.NewRoute().Name(RepositoryActivity).Methods("GET").Path("/service/local/staging/repository/{repository}/activity")

	r.NewRoute().Name(BulkClose).Methods("POST").Path("/service/local/staging/bulk/close")
	r.NewRoute().Name(BulkPromote).Methods("POST").Path("/service/local/staging/bulk/promote")
	r.NewRoute().Name(BulkDrop).Methods("POST").Path("/service/local/staging/bulk/drop")

	return r
}

// MakeURL resolves a named route against the endpoint base URL.
// urlParams are pairs filling the route's path variables, e.g.
// "repository", "comexample-1024".
func MakeURL(endpoint string, router *mux.Router, routeName string, urlParams ...string) (*url.URL, error) {
	if len(urlParams)%2 != 0 {
		panic("urlParams must be even!")
	}

	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing endpoint %s", endpoint)
	}
	route := router.Get(routeName)
	if route == nil {
		return nil, errors.New("no route with name " + routeName)
	}
	routeURL, err := route.URLPath(urlParams...)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving route path %s", routeName)
	}

	endpointURL.Path = path.Join(endpointURL.Path, routeURL.Path)
	return endpointURL, nil
}

// negotiateContentType picks a content type based on the Accept
// header from a request and a list of available types in order of
// preference. Higher quality (`q`) wins; among equal qualities the
// earlier available type wins.
func negotiateContentType(r *http.Request, orderedPref []string) string {
	specs := header.ParseAccept(r.Header, "Accept")
	if len(specs) == 0 {
		return orderedPref[0]
	}

	var matching []header.AcceptSpec
	for _, spec := range specs {
		if indexOf(orderedPref, spec.Value) < len(orderedPref) {
			matching = append(matching, spec)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		if matching[i].Q == matching[j].Q {
			return indexOf(orderedPref, matching[i].Value) < indexOf(orderedPref, matching[j].Value)
		}
		return matching[i].Q > matching[j].Q
	})
	if len(matching) > 0 {
		return matching[0].Value
	}
	return ""
}

// indexOf returns len(ss) when search is absent, so misses sort after
// every hit without a special case.
func indexOf(ss []string, search string) int {
	for i, s := range ss {
		if s == search {
			return i
		}
	}
	return len(ss)
}

// WriteError renders err the way the repository manager does: JSON
// for clients that accept it, plain help text otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if len(r.Header.Get("Accept")) > 0 {
		switch negotiateContentType(r, []string{"application/json", "text/plain"}) {
		case "application/json":
			body, encodeErr := json.Marshal(err)
			if encodeErr != nil {
				w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, "Error encoding error response: %s\n\nOriginal error: %s", encodeErr.Error(), err.Error())
				return
			}
			w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "application/json; charset=utf-8")
			w.WriteHeader(code)
			w.Write(body)
			return
		case "text/plain":
			w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "text/plain; charset=utf-8")
			w.WriteHeader(code)
			switch err := err.(type) {
			case *stagerr.Error:
				fmt.Fprint(w, err.Help)
			default:
				fmt.Fprint(w, err.Error())
			}
			return
		}
	}
	w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "text/plain; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprint(w, err.Error())
}

func JSONResponse(w http.ResponseWriter, r *http.Request, result interface{}) {
	body, err := json.Marshal(result)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func ErrorResponse(w http.ResponseWriter, r *http.Request, apiError error) {
	var outErr *stagerr.Error
	var code int
	var ok bool

	err := errors.Cause(apiError)
	if outErr, ok = err.(*stagerr.Error); !ok {
		outErr = stagerr.CoverAllError(apiError)
	}
	switch outErr.Type {
	case stagerr.Missing:
		code = http.StatusNotFound
	case stagerr.User:
		code = http.StatusUnprocessableEntity
	case stagerr.Server:
		code = http.StatusInternalServerError
	default:
		code = http.StatusInternalServerError
	}
	WriteError(w, r, code, outErr)
}
