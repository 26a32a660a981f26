package ministry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// failureMarkers are substrings the service puts in 200 responses that are
// really failures.
var failureMarkers = []string{"Error", "Fail", "غير صحيحة"}

// unwrap strips the optional {"d": ...} envelope.
func unwrap(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response")
	}
	if !json.Valid(trimmed) {
		return nil, errors.New("response is not JSON")
	}
	if trimmed[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if d, ok := env["d"]; ok {
				return d, nil
			}
		}
	}
	return json.RawMessage(trimmed), nil
}

// inbandText returns the payload as a string when the service answered
// with a bare JSON string.
func inbandText(payload json.RawMessage) (string, bool) {
	var s string
	if len(payload) == 0 || payload[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(payload, &s); err != nil {
		return "", false
	}
	return s, true
}

func looksLikeFailure(s string) bool {
	for _, m := range failureMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// fields decodes a JSON object into raw members.
type fields map[string]json.RawMessage

// pick returns the first non-empty value among keys, with numbers and
// booleans rendered as strings.
func (f fields) pick(keys ...string) string {
	for _, k := range keys {
		raw, ok := f[k]
		if !ok {
			continue
		}
		if s := scalar(raw); s != "" {
			return s
		}
	}
	return ""
}

func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return strings.TrimSpace(s)
		}
	case 't', 'f':
		return string(raw)
	default:
		var n json.Number
		if json.Unmarshal(raw, &n) == nil {
			return n.String()
		}
	}
	return ""
}

func parseLogin(status int, body []byte) (Session, error) {
	payload, err := unwrap(body)
	if err != nil {
		return Session{}, &Error{Kind: KindDecode, Op: "login", Status: status, Err: err}
	}
	if text, ok := inbandText(payload); ok {
		if looksLikeFailure(text) {
			return Session{}, &Error{Kind: KindInvalidCredentials, Op: "login", Status: status, Err: errors.New(text)}
		}
		return Session{}, &Error{Kind: KindInvalidCredentials, Op: "login", Status: status, Err: fmt.Errorf("unexpected text response %q", text)}
	}

	var f fields
	if err := json.Unmarshal(payload, &f); err != nil {
		return Session{}, &Error{Kind: KindInvalidCredentials, Op: "login", Status: status, Err: fmt.Errorf("response is not an object: %w", err)}
	}
	userID := f.pick("UserID", "id", "ID")
	if userID == "" {
		return Session{}, &Error{Kind: KindInvalidCredentials, Op: "login", Status: status, Err: errors.New("response has no user id")}
	}
	return Session{
		UserID:     userID,
		AuthToken:  f.pick("AuthToken", "token"),
		UserRoleID: orZero(f.pick("UserRoleId")),
		SchoolID:   orZero(f.pick("SchoolId")),
		TeacherID:  orZero(f.pick("DepInsId", "DeptInsId")),
	}, nil
}

// listOf accepts a bare array or an object wrapping one under a known key.
func listOf(payload json.RawMessage, keys ...string) ([]fields, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) > 0 && payload[0] == '{' {
		var f fields
		if err := json.Unmarshal(payload, &f); err != nil {
			return nil, err
		}
		found := false
		for _, k := range keys {
			if raw, ok := f[k]; ok {
				payload, found = bytes.TrimSpace(raw), true
				break
			}
		}
		if !found {
			return nil, errors.New("no list in response")
		}
	}
	if string(payload) == "null" {
		return nil, nil
	}
	var items []fields
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func parseFilters(status int, body []byte) ([]Filter, error) {
	payload, err := unwrap(body)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "filters", Status: status, Err: err}
	}
	if text, ok := inbandText(payload); ok {
		return nil, &Error{Kind: KindRejected, Op: "filters", Status: status, Err: errors.New(text)}
	}
	items, err := listOf(payload, "Classes", "classes", "Filters", "Data", "data")
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "filters", Status: status, Err: err}
	}

	out := make([]Filter, 0, len(items))
	for _, it := range items {
		f := Filter{
			ClassID:   it.pick("ClassId", "ClassID", "classId"),
			ClassName: it.pick("ClassName", "className", "Name"),
			GradeID:   it.pick("GradeId", "GradeID", "gradeId"),
			GradeName: it.pick("GradeName", "gradeName"),
		}
		if f.ClassID == "" && f.ClassName == "" {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, &Error{Kind: KindNoClasses, Op: "filters", Status: status}
	}
	return out, nil
}

func parseAbsences(status int, body []byte) ([]StudentAbsence, error) {
	payload, err := unwrap(body)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "absence details", Status: status, Err: err}
	}
	if text, ok := inbandText(payload); ok {
		return nil, &Error{Kind: KindRejected, Op: "absence details", Status: status, Err: errors.New(text)}
	}
	items, err := listOf(payload, "StdsAbsDetails", "Details", "Data", "data")
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "absence details", Status: status, Err: err}
	}
	out := make([]StudentAbsence, 0, len(items))
	for _, it := range items {
		out = append(out, StudentAbsence{
			StudentID:   it.pick("StudentId", "StudentID", "StdId"),
			StudentName: it.pick("StudentName", "Name"),
			AbsenceType: it.pick("AbsenceType", "Type"),
			Date:        it.pick("AbsenceDate", "Date", "StartDate"),
		})
	}
	return out, nil
}

// parseAck interprets a submission response. Text containing a failure
// marker is a rejection even on a 200.
func parseAck(op string, status int, body []byte) (Ack, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Ack{}, nil
	}
	payload, err := unwrap(body)
	if err != nil {
		return Ack{}, &Error{Kind: KindDecode, Op: op, Status: status, Err: err}
	}
	if text, ok := inbandText(payload); ok {
		if looksLikeFailure(text) {
			return Ack{}, &Error{Kind: KindRejected, Op: op, Status: status, Err: errors.New(text)}
		}
		return Ack{Message: text}, nil
	}
	var f fields
	if json.Unmarshal(payload, &f) == nil {
		if ok := f.pick("Success", "IsSuccess"); ok == "false" {
			return Ack{}, &Error{Kind: KindRejected, Op: op, Status: status, Err: errors.New(f.pick("Message", "ErrorMessage"))}
		}
		return Ack{Message: f.pick("Message", "Result")}, nil
	}
	return Ack{}, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
