package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"

	e "github.com/microcosm-cc/catalogue/errors"
)

// Context is the request scaffolding handed to every controller: the raw
// request and response writer, the decoded route variables, and the time the
// request started for duration logging
type Context struct {
	Request        *http.Request
	ResponseWriter http.ResponseWriter
	RouteVars      map[string]string
	StartTime      time.Time
}

// MakeContext builds the Context for a request
func MakeContext(
	r *http.Request,
	w http.ResponseWriter,
) *Context {
	return &Context{
		Request:        r,
		ResponseWriter: w,
		RouteVars:      mux.Vars(r),
		StartTime:      time.Now(),
	}
}

// GetHTTPMethod returns the HTTP method, with HEAD treated as GET
func (c *Context) GetHTTPMethod() string {
	if c.Request.Method == http.MethodHead {
		return http.MethodGet
	}
	return c.Request.Method
}

// Fill decodes the JSON request body into the given value. A body that is
// not well-formed JSON is a client error.
func (c *Context) Fill(v interface{}) error {
	defer c.Request.Body.Close()

	if err := json.NewDecoder(c.Request.Body).Decode(v); err != nil {
		return e.New("Fill", e.ValidationError,
			"the request body is not valid JSON")
	}

	return nil
}

// StandardResponse is the envelope wrapping every JSON response
type StandardResponse struct {
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func (c *Context) writeResponse(resp StandardResponse, status int) {
	c.ResponseWriter.Header().Set("Content-Type", "application/json")
	c.ResponseWriter.WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter).Encode(resp); err != nil {
		glog.Errorf("could not write response %+v", err)
	}

	if glog.V(2) {
		glog.Infof(
			"%s %s %d %s",
			c.Request.Method,
			c.Request.URL.Path,
			status,
			time.Since(c.StartTime),
		)
	}
}

// RespondWithData serves the given value wrapped in the standard envelope
func (c *Context) RespondWithData(data interface{}) {
	c.writeResponse(StandardResponse{Data: data}, http.StatusOK)
}

// RespondWithErrorDetail serves err at the status its code maps to
func (c *Context) RespondWithErrorDetail(err error, status int) {
	var ce *e.CatalogueError
	if !errors.As(err, &ce) {
		c.RespondWithErrorMessage("an unexpected error occurred", status)
		return
	}
	c.writeResponse(StandardResponse{Error: ce.ErrorMessage}, status)
}

// RespondWithErrorMessage serves a bare error string
func (c *Context) RespondWithErrorMessage(message string, status int) {
	c.writeResponse(StandardResponse{Error: message}, status)
}

// RespondWithNotImplemented rejects a method the route does not support
func (c *Context) RespondWithNotImplemented() {
	c.RespondWithErrorMessage(
		"method not supported on this endpoint",
		http.StatusMethodNotAllowed,
	)
}
