// Package services is the collaborator interface of markbook: registration
// and sign-in, marks submission and lookup, and report building for the
// signed-in account. Presentation layers call these and never touch the
// repositories directly.
package services
