// Package principal models the acting user of a request and its resolved
// role set for authorization decisions.
//
// The package includes:
//   - Principal: a per-request value object carrying the actor's identity and roles
//   - Role: the multi-valued classification {Customer, Manager, DeliveryCrew}
//
// Key business rules:
//   - Every authenticated actor is at least a Customer
//   - Manager membership implies the elevated staff capability (derived, never stored)
//   - Roles are resolved once per request and passed explicitly into domain services
package principal
