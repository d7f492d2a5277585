// Package access implements the context-scoped access-control engine.
//
// The engine decides whether a user may perform an action, optionally
// narrowed to a project, environment, content schema, or content lifecycle
// status. Grants are expressed as access rules binding one user to one role;
// each rule carries an optional four-dimensional scope where an empty
// dimension is a wildcard.
//
// # Scope Matching
//
// A rule applies to a request context iff every non-empty dimension of the
// rule's scope equals the corresponding dimension of the context. Matching is
// a per-dimension AND with no negation; any one applicable rule granting the
// permission is sufficient, so a more specific rule never overrides a broader
// one ("most permissive wins").
//
// # Permission Checking
//
// The Service type provides the decision operations:
//   - CheckAccess: decide a single permission for a user in a scope
//   - EffectivePermissions: the scope-blind, sorted union of a user's
//     permission codes, embedded into issued credentials as a client-side
//     fast path (advisory only, never authoritative for scoped actions)
//
// Unknown permission codes never grant access: CheckAccess resolves them to
// a plain "denied" so the operation stays total.
//
// # Bootstrap
//
// Before any access rule exists the system is unbootstrapped. The first
// operator is granted the reserved platform-admin role globally through
// BootstrapFirstUser, which succeeds at most once system-wide. While
// unbootstrapped, AllowSetup relaxes management authorization so that roles
// and permissions can be created before any rule exists.
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequirePermission: protect routes requiring a specific permission
//   - RequireSetup: protect management routes with the bootstrap bypass rule
//
// Example usage:
//
//	svc := access.NewService(db)
//
//	allowed, err := svc.CheckAccess(userID, access.PermContentPublish, access.Scope{
//	    ProjectID: "proj-1",
//	})
//
//	app.Post("/roles",
//	    access.RequireSetup(svc),
//	    handler,
//	)
package access
