// Package handlers implements the HTTP handlers for the spendwatch
// status API.
//
// # Endpoints
//
//	GET  /v1/accounts                           list stored accounts
//	PUT  /v1/accounts/{account}                 create or replace an account
//	POST /v1/accounts/{account}/spend           record a spend event
//	GET  /v1/accounts/{account}/limit-status    evaluate the limit status
//	GET  /health                                liveness probe
//	GET  /ready                                 readiness probe
//
// # Status Mapping
//
// The limit-status endpoint maps the evaluation result onto HTTP status
// codes: a ready snapshot is 200, an unknown account is 404, a stored
// non-positive limit is 422, and any other fetch failure is 503. The body
// is the result's JSON form in every case, so clients can always
// distinguish the ready and unavailable states from the payload alone.
package handlers
