// Package auth implements the stateless authentication subsystem for the
// ShopNest backend: bcrypt credential verification, JWT issuance and
// validation, and the per-request token guard.
//
// Request flow:
//   - Registration stores a salted bcrypt hash of the password; the clear
//     text secret is never persisted.
//   - Login re-verifies the hash through an IdentityProvider and, on match,
//     mints a signed token bound to the caller's email.
//   - TokenGuard runs on every inbound request. It validates the bearer
//     token locally (signature + expiry, no store lookups) and attaches the
//     resolved Subject to the request context. The guard never aborts a
//     request; route policy enforcement decides later whether an identity
//     was required.
//
// The signing key and token lifetime are injected via Config at construction
// of both the minting and validation paths; there is no package-level key.
package auth
