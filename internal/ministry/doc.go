// Package ministry is a best-effort client for the ministry of education's
// teacher web service, plus the session state machine the UI drives.
//
// # Wire format
//
// Every call is a JSON POST to the configured base URL plus a path suffix,
// with the headers the official mobile app sends:
//
//	Content-Type: application/json; charset=UTF-8
//	Accept:       application/json
//	User-Agent:   MOE-Teacher-App/3.0 (iOS)
//
// Field names (USme, PPPWZ, UserID, AuthToken, StdsAbsDetails, ...) are
// defined by the service, not by this package.
//
// # Endpoint probing
//
// Login and the class list each have more than one known path. Probe posts
// to the candidates in order; 404 means "try the next one" and any other
// status identifies the real endpoint. ProbeResult reports which path
// answered.
//
//	LoginCandidates:  /Login, /UserLogin
//	FilterCandidates: /GetStudentAbsenceFilter, /GetTeacherClasses
//
// # Typed responses
//
// Bodies are interpreted at the boundary and never leave this package
// untyped. The optional {"d": ...} envelope is stripped first. Failures
// come back as *Error with a Kind:
//
//	KindNetwork             transport failure or cancelled context
//	KindEndpointNotFound    every candidate answered 404
//	KindStatus              unexpected HTTP status
//	KindDecode              body was not usable JSON
//	KindInvalidCredentials  login answered without a user id
//	KindRejected            a 200 whose text reports a failure
//	KindNoClasses           class list was empty
//
// The service reports business errors in-band as 200 responses carrying
// text such as "Error", "Fail" or "غير صحيحة". Matching on those words is
// fragile and is confined to response.go. Message turns any error into the
// Arabic text shown to the teacher.
//
// # Session state machine
//
//	Unauthenticated ──Login──▶ Authenticating ──ok──▶ Authenticated
//	       ▲                        │                    │  LoadFilters
//	       └────────fail────────────┘                    │  Select
//	       └──────────────────Logout─────────────────────┘  Submit*
//
// A failed class-list fetch or submission leaves the adapter authenticated.
// Submissions send the whole batch in one request with no retry queue.
package ministry
