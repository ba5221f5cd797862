// Package jobboard provides the authorization and lifecycle engine for a
// job board: JWT issuance and validation, principal resolution, role and
// ownership policy, and the posting/application services backed by Bun.
//
// Accounts and tokens:
//   - Users carry a UserRole (job_seeker, employer, admin) persisted via
//     Bun. Admin satisfies every role gate; seeker and employer gates are
//     otherwise disjoint.
//   - TokenService issues HS256 access/refresh pairs with a kind claim so a
//     refresh token can never authenticate a request. Resolver turns a raw
//     bearer token into a Principal, treating a vanished subject the same
//     as no credentials at all.
//
// Ownership and visibility:
//   - Owner-scoped repository lookups bake the owner id into the query, so
//     a record that exists but belongs to someone else reads as not-found.
//     Policy helpers in policy.go are pure functions over loaded records;
//     the services decide when a failed check folds into not-found versus
//     forbidden.
//
// Applications:
//   - ApplicationEngine enforces one application per (job, applicant)
//     pair. A storage-level unique constraint backs the service pre-check,
//     so concurrent duplicate filings resolve to exactly one row. Content
//     edits are pending-only; employer status moves are unrestricted
//     between the known statuses.
package jobboard
