// Package api is the client of the cultivation backend's REST API.
//
// Every call carries the session cookie from the configuration and an
// X-Request-ID equal to the trace id found in its context. List responses
// are served from the on-disk cache when one is attached; creates and
// deletes drop the cached lists of the collection they touch.
package api
