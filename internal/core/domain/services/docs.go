// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the ordering backend. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderPatchPolicy: role gating for mutations of an order's lifecycle fields
//   - OrderPatch: the requested change the policy evaluates
//
// Domain services coordinate between aggregates and per-request principals,
// following Domain-Driven Design principles.
package services
