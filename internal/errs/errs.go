// Package errs defines the error shape every failure is reduced to before
// it leaves the process.
//
// Repositories, services, and middleware return *HTTPError values with a
// stable machine-readable Code and a human-readable Message; the global
// error handler serializes them as-is.
package errs
