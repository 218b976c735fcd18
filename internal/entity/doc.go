// Package entity defines the records served by the cultivation API and the
// validation applied to create payloads before they are sent.
//
// All types marshal to the API's camelCase JSON. Relations (a plant's
// genetic, a user's roles) are optional and only populated when the backend
// includes them.
package entity
