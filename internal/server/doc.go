// Package server hosts the Fiber diagnostics service that sits in front of a
// schema store. The store itself is single-threaded, so the server only
// talks to it through SerializedStore, which holds one mutex around every
// call. Routes live in the routes subpackage and only take explicit
// dependencies, keeping this package limited to app construction and
// request middleware.
package server
