// Package backend is the HTTP client for the interaction-resolution service.
//
// It implements three driven ports over one Client:
//
//   - driven.InteractionBackend: POST /interactions/check
//   - driven.AuthBackend: POST /auth/login
//   - driven.ResourceClient: REST CRUD over the admin resources
//
// Requests carry an X-Request-ID and, when a session is active, a bearer
// token. Non-2xx responses become *APIError, which exposes the server's
// message to the core through domain.MessageError.
package backend
