package ministry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// API is the set of service calls the Adapter depends on.
type API interface {
	Login(ctx context.Context, creds Credentials) (Session, error)
	FetchFilters(ctx context.Context, s Session) ([]Filter, error)
	SubmitAbsence(ctx context.Context, s Session, f Filter, date string, entries []AbsenceEntry) (Ack, error)
	SubmitMarks(ctx context.Context, s Session, cfg MarksConfig, entries []MarkEntry) (Ack, error)
}

var _ API = (*Client)(nil)

var validate = validator.New()

// Connection is the outcome of TestConnection.
type Connection struct {
	Reachable bool
	Status    int
}

// TestConnection pings the login endpoint with placeholder credentials.
// 200, 401 and 500 all prove the service exists; 404 means the base URL is
// wrong.
func (c *Client) TestConnection(ctx context.Context) (Connection, error) {
	status, _, err := c.post(ctx, "/Login", loginRequest{User: "ping", Pass: "ping"})
	if err != nil {
		return Connection{}, &Error{Kind: KindNetwork, Op: "ping", Err: err}
	}
	switch status {
	case http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError:
		return Connection{Reachable: true, Status: status}, nil
	case http.StatusNotFound:
		return Connection{Status: status}, &Error{Kind: KindEndpointNotFound, Op: "ping", Status: status}
	default:
		return Connection{Status: status}, &Error{Kind: KindStatus, Op: "ping", Status: status}
	}
}

type loginRequest struct {
	User string `json:"USme"`
	Pass string `json:"PPPWZ"`
}

// Login authenticates against the first login endpoint that exists.
func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	if err := validate.Struct(creds); err != nil {
		return Session{}, &Error{Kind: KindInvalidCredentials, Op: "login", Err: err}
	}
	res, err := c.Probe(ctx, "login", LoginCandidates, loginRequest{User: creds.Username, Pass: creds.Password})
	if err != nil {
		return Session{}, err
	}
	if res.Status != http.StatusOK && res.Status != http.StatusCreated {
		return Session{}, &Error{Kind: KindStatus, Op: "login", Status: res.Status}
	}
	session, err := parseLogin(res.Status, res.Body)
	if err != nil {
		return Session{}, err
	}
	c.log.Info().Str("path", res.Path).Str("school", session.SchoolID).Msg("logged in")
	return session, nil
}

type filterRequest struct {
	UserID     string `json:"userId"`
	Auth       string `json:"auth"`
	UserRoleID string `json:"UserRoleId"`
	SchoolID   string `json:"SchoolId"`
	DeptInsID  string `json:"DeptInsId"`
}

// FetchFilters lists the classes the teacher may submit for.
func (c *Client) FetchFilters(ctx context.Context, s Session) ([]Filter, error) {
	req := filterRequest{
		UserID:     s.UserID,
		Auth:       s.AuthToken,
		UserRoleID: s.UserRoleID,
		SchoolID:   s.SchoolID,
		DeptInsID:  s.TeacherID,
	}
	res, err := c.Probe(ctx, "filters", FilterCandidates, req)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, &Error{Kind: KindStatus, Op: "filters", Status: res.Status}
	}
	return parseFilters(res.Status, res.Body)
}

type absenceDetailsRequest struct {
	UserID          string `json:"userId"`
	Auth            string `json:"auth"`
	UserRoleID      string `json:"UserRoleId"`
	SchoolID        string `json:"SchoolId"`
	DepInsID        string `json:"DepInsId"`
	GradeID         string `json:"GradeId"`
	ClassID         string `json:"ClassId"`
	StudentSchoolNo string `json:"StudentSchoolNo"`
	StartDate       string `json:"StartDate"`
	EndDate         string `json:"EndDate"`
}

// FetchAbsenceDetails returns recorded absences for one student.
func (c *Client) FetchAbsenceDetails(ctx context.Context, s Session, q AbsenceQuery) ([]StudentAbsence, error) {
	end := q.EndDate
	if end == "" {
		end = q.StartDate
	}
	req := absenceDetailsRequest{
		UserID:          s.UserID,
		Auth:            s.AuthToken,
		UserRoleID:      s.UserRoleID,
		SchoolID:        s.SchoolID,
		DepInsID:        s.TeacherID,
		GradeID:         q.GradeID,
		ClassID:         q.ClassID,
		StudentSchoolNo: q.StudentSchoolNo,
		StartDate:       q.StartDate,
		EndDate:         end,
	}
	status, body, err := c.post(ctx, "/GetStudentAbsenceDetails", req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: "absence details", Err: err}
	}
	if status != http.StatusOK {
		return nil, &Error{Kind: KindStatus, Op: "absence details", Status: status}
	}
	return parseAbsences(status, body)
}

type absenceSubmission struct {
	UserID         string         `json:"userId"`
	Auth           string         `json:"auth"`
	SchoolID       string         `json:"SchoolId"`
	GradeID        string         `json:"GradeId"`
	ClassID        string         `json:"ClassId"`
	StartDate      string         `json:"StartDate"`
	UserRoleID     string         `json:"UserRoleId"`
	StdsAbsDetails []AbsenceEntry `json:"StdsAbsDetails"`
}

// SubmitAbsence sends one day's attendance for a class in a single request.
func (c *Client) SubmitAbsence(ctx context.Context, s Session, f Filter, date string, entries []AbsenceEntry) (Ack, error) {
	if entries == nil {
		entries = []AbsenceEntry{}
	}
	req := absenceSubmission{
		UserID:         s.UserID,
		Auth:           s.AuthToken,
		SchoolID:       s.SchoolID,
		GradeID:        f.GradeID,
		ClassID:        f.ClassID,
		StartDate:      date,
		UserRoleID:     s.UserRoleID,
		StdsAbsDetails: entries,
	}
	return c.submit(ctx, "submit absence", "/SubmitStudentAbsenceDetails", req)
}

type marksSubmission struct {
	UserID           string      `json:"userId"`
	Auth             string      `json:"auth"`
	SchoolID         string      `json:"SchoolId"`
	UserRoleID       string      `json:"UserRoleId"`
	ClassID          string      `json:"ClassId"`
	GradeID          string      `json:"GradeId"`
	TermID           string      `json:"TermId"`
	SubjectID        string      `json:"SubjectId"`
	ExamID           string      `json:"ExamId"`
	EduSysID         string      `json:"EduSysId"`
	StageID          string      `json:"StageId"`
	ExamGradeType    int         `json:"ExamGradeType"`
	StdsGradeDetails []MarkEntry `json:"StdsGradeDetails"`
}

// SubmitMarks sends an exam's marks for a class in a single request.
func (c *Client) SubmitMarks(ctx context.Context, s Session, cfg MarksConfig, entries []MarkEntry) (Ack, error) {
	if entries == nil {
		entries = []MarkEntry{}
	}
	req := marksSubmission{
		UserID:           s.UserID,
		Auth:             s.AuthToken,
		SchoolID:         s.SchoolID,
		UserRoleID:       s.UserRoleID,
		ClassID:          cfg.ClassID,
		GradeID:          cfg.GradeID,
		TermID:           cfg.TermID,
		SubjectID:        cfg.SubjectID,
		ExamID:           cfg.ExamID,
		EduSysID:         defaultString(cfg.EduSysID, "1"),
		StageID:          defaultString(cfg.StageID, "0"),
		ExamGradeType:    cfg.ExamGradeType,
		StdsGradeDetails: entries,
	}
	if req.ExamGradeType == 0 {
		req.ExamGradeType = 1
	}
	return c.submit(ctx, "submit marks", "/SubmitStudentMarksDetails", req)
}

func (c *Client) submit(ctx context.Context, op, path string, payload any) (Ack, error) {
	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	status, body, err := c.post(ctx, path, payload)
	if err != nil {
		return Ack{}, &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	if status != http.StatusOK {
		return Ack{}, &Error{Kind: KindStatus, Op: op, Status: status, Err: fmt.Errorf("%s returned status %d", path, status)}
	}
	return parseAck(op, status, body)
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
