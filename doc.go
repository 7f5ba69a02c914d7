// Package users implements a user-account service: registration, profile
// reads and updates, soft deletion, paginated listing, and JWT login over a
// Bun-backed relational store.
//
// Authentication pipeline:
//   - UserProvider verifies credentials against the users repository. A
//     missing account and a wrong password produce the same error so callers
//     cannot probe for registered emails.
//   - HMACTokenService signs and verifies HS512 tokens. The signing key is the
//     base64-decoded shared secret, checked once at construction; every
//     verification failure collapses to ErrInvalidToken.
//   - middleware/jwtware guards protected routes. It is permissive: requests
//     without a bearer token pass through anonymous and each handler decides
//     whether an empty principal is acceptable.
//
// Account CRUD lives in AccountService and is exposed over fiber by
// UserController. Request and response bodies negotiate JSON or XML from the
// Content-Type and Accept headers, JSON being the default.
package users
