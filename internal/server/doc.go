// Package server provides HTTP routing, middleware, and login callback handling for the CLI.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Login Callback Handler
//
// [CallbackHandler] receives the redirect that ends the backend's login flow.
//
// The backend sends the browser back to the loopback address with query parameters
// auth (success, error, or denied), user, and message. The handler decodes them
// and sends the result through a channel.
//
// It only processes one callback, so a reloaded browser tab cannot replay the outcome.
//
// # Current Usage
//
// When the user runs the login command, a temporary HTTP server starts on the
// configured loopback address (localhost:5173 by default), handles the redirect,
// and shuts down after receiving the outcome. [WaitForCallback] wraps the whole
// lifecycle behind one call.
package server
