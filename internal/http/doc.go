// Package http provides HTTP handlers and middleware for the planner API.
//
// The router exposes the following endpoints:
//   - GET /session-types, POST /session-types, GET /session-types/{id},
//     PUT /session-types/{id}, DELETE /session-types/{id}: activity catalog
//     endpoints exchanging the `sessionTypeDTO` payload defined in
//     sessiontype_handler.go. Deleting a type removes its sessions.
//   - GET /sessions, POST /sessions, GET /sessions/{id}, PUT /sessions/{id},
//     DELETE /sessions/{id}: booking endpoints exchanging the `sessionDTO`
//     payload defined in session_handler.go. Create and update accept a
//     `check_conflict` flag; when set and the interval overlaps an existing
//     booking the response is 409 with the conflicting sessions.
//   - POST /sessions/check-conflict: answers whether a proposed interval
//     would overlap anything booked. Always 200; a conflict is a result,
//     not a failure.
//   - GET /availability, POST /availability, PUT /availability/{id},
//     DELETE /availability/{id}: weekly availability window endpoints
//     exchanging the `availabilityWindowDTO` payload defined in
//     availability_handler.go.
//   - GET /suggestions?type_id=&duration=&days_ahead=&limit=: ranked slot
//     suggestions for one session type, with per-slot scoring reasons and a
//     summary of the type's history.
//   - GET /stats: per-type statistics plus aggregate counters and derived
//     spacing/streak metrics.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
