package ministry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type recorded struct {
	path string
	body map[string]any
}

type fakeService struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter)
}

func newFakeService(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*fakeService, *Client) {
	t.Helper()
	fs := &fakeService{routes: routes}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != contentType {
			t.Errorf("Content-Type = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent = %q", got)
		}
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		fs.mu.Lock()
		fs.requests = append(fs.requests, recorded{path: r.URL.Path, body: body})
		fs.mu.Unlock()

		handler, ok := fs.routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/Services/MTletIt.svc//")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return fs, c
}

func (f *fakeService) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	for i, r := range f.requests {
		out[i] = r.path
	}
	return out
}

func (f *fakeService) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func reply(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

const svc = "/Services/MTletIt.svc"

func ctxT(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	c, err := NewClient("")
	if err != nil || c.BaseURL() != DefaultBaseURL {
		t.Fatalf("default base = %q, %v", c.BaseURL(), err)
	}
	c, err = NewClient("https://example.com/svc///")
	if err != nil || c.BaseURL() != "https://example.com/svc" {
		t.Fatalf("trimmed base = %q, %v", c.BaseURL(), err)
	}
	if _, err := NewClient("ftp://example.com"); err == nil {
		t.Fatal("ftp scheme should be rejected")
	}
}

func TestProbe_SkipsNotFoundAndReportsCandidate(t *testing.T) {
	svcFake, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/UserLogin": reply(http.StatusOK, `{"d":{"UserID":7}}`),
	})

	res, err := c.Probe(ctxT(t), "login", LoginCandidates, loginRequest{User: "u", Pass: "p"})
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if res.Path != "/UserLogin" || res.Status != http.StatusOK {
		t.Fatalf("ProbeResult = %#v", res)
	}
	if got := svcFake.paths(); len(got) != 2 || got[0] != svc+"/Login" {
		t.Fatalf("requested paths = %v", got)
	}
}

func TestProbe_NonNotFoundStatusIsAuthoritative(t *testing.T) {
	svcFake, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/Login":     reply(http.StatusInternalServerError, `{}`),
		svc + "/UserLogin": reply(http.StatusOK, `{"UserID":"1"}`),
	})
	res, err := c.Probe(ctxT(t), "login", LoginCandidates, nil)
	if err != nil || res.Path != "/Login" || res.Status != http.StatusInternalServerError {
		t.Fatalf("Probe = %#v, %v; want /Login 500", res, err)
	}
	if n := len(svcFake.paths()); n != 1 {
		t.Fatalf("probed %d candidates, want 1", n)
	}
}

func TestProbe_AllNotFound(t *testing.T) {
	_, c := newFakeService(t, nil)
	_, err := c.Probe(ctxT(t), "login", LoginCandidates, nil)
	if KindOf(err) != KindEndpointNotFound {
		t.Fatalf("err = %v, want KindEndpointNotFound", err)
	}
}

func TestProbe_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Probe(ctxT(t), "login", LoginCandidates, nil)
	if KindOf(err) != KindNetwork {
		t.Fatalf("err = %v, want KindNetwork", err)
	}
}

func TestLogin_ParsesSession(t *testing.T) {
	svcFake, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/Login": reply(http.StatusOK, `{"d":{"UserID":123,"AuthToken":"tok","SchoolId":"55","DeptInsId":9}}`),
	})

	s, err := c.Login(ctxT(t), Credentials{Username: "teacher", Password: "secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	want := Session{UserID: "123", AuthToken: "tok", UserRoleID: "0", SchoolID: "55", TeacherID: "9"}
	if s != want {
		t.Fatalf("Session = %#v, want %#v", s, want)
	}
	body := svcFake.last().body
	if body["USme"] != "teacher" || body["PPPWZ"] != "secret" {
		t.Fatalf("login payload = %#v", body)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	cases := map[string]string{
		"no user id":    `{"d":{"Message":"ok"}}`,
		"error text":    `{"d":"Error: bad password"}`,
		"arabic text":   `"كلمة المرور غير صحيحة"`,
		"empty object":  `{}`,
		"null envelope": `{"d":null}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, c := newFakeService(t, map[string]func(http.ResponseWriter){
				svc + "/Login": reply(http.StatusOK, body),
			})
			_, err := c.Login(ctxT(t), Credentials{Username: "u", Password: "p"})
			if KindOf(err) != KindInvalidCredentials {
				t.Fatalf("err = %v, want KindInvalidCredentials", err)
			}
			if Message(err) != "اسم المستخدم أو كلمة المرور غير صحيحة" {
				t.Fatalf("Message = %q", Message(err))
			}
		})
	}
}

func TestLogin_EmptyCredentialsNeverHitNetwork(t *testing.T) {
	svcFake, c := newFakeService(t, nil)
	_, err := c.Login(ctxT(t), Credentials{Username: "u"})
	if KindOf(err) != KindInvalidCredentials {
		t.Fatalf("err = %v", err)
	}
	if n := len(svcFake.paths()); n != 0 {
		t.Fatalf("made %d requests, want 0", n)
	}
}

func TestTestConnection(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError} {
		_, c := newFakeService(t, map[string]func(http.ResponseWriter){svc + "/Login": reply(status, `{}`)})
		conn, err := c.TestConnection(ctxT(t))
		if err != nil || !conn.Reachable || conn.Status != status {
			t.Fatalf("status %d: conn=%#v err=%v", status, conn, err)
		}
	}

	_, c := newFakeService(t, nil)
	if _, err := c.TestConnection(ctxT(t)); KindOf(err) != KindEndpointNotFound {
		t.Fatalf("404 err = %v, want KindEndpointNotFound", err)
	}
}

func TestFetchFilters(t *testing.T) {
	svcFake, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/GetTeacherClasses": reply(http.StatusOK, `{"d":[{"ClassId":11,"ClassName":"4A","GradeId":4,"GradeName":"الرابع"},{"Foo":"bar"}]}`),
	})
	session := Session{UserID: "1", AuthToken: "tok", UserRoleID: "2", SchoolID: "3", TeacherID: "4"}

	filters, err := c.FetchFilters(ctxT(t), session)
	if err != nil {
		t.Fatalf("FetchFilters returned error: %v", err)
	}
	if len(filters) != 1 || filters[0] != (Filter{ClassID: "11", ClassName: "4A", GradeID: "4", GradeName: "الرابع"}) {
		t.Fatalf("filters = %#v", filters)
	}
	body := svcFake.last().body
	if body["userId"] != "1" || body["auth"] != "tok" || body["DeptInsId"] != "4" {
		t.Fatalf("filter payload = %#v", body)
	}
}

func TestFetchFilters_Empty(t *testing.T) {
	_, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/GetStudentAbsenceFilter": reply(http.StatusOK, `{"d":[]}`),
	})
	_, err := c.FetchFilters(ctxT(t), Session{UserID: "1"})
	if KindOf(err) != KindNoClasses {
		t.Fatalf("err = %v, want KindNoClasses", err)
	}
}

func TestFetchAbsenceDetails(t *testing.T) {
	svcFake, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/GetStudentAbsenceDetails": reply(http.StatusOK, `{"d":{"StdsAbsDetails":[{"StudentId":"9","AbsenceType":1,"AbsenceDate":"2024-01-10"}]}}`),
	})
	got, err := c.FetchAbsenceDetails(ctxT(t), Session{UserID: "1"}, AbsenceQuery{ClassID: "11", StartDate: "2024-01-10"})
	if err != nil {
		t.Fatalf("FetchAbsenceDetails returned error: %v", err)
	}
	if len(got) != 1 || got[0].StudentID != "9" || got[0].AbsenceType != "1" {
		t.Fatalf("absences = %#v", got)
	}
	if body := svcFake.last().body; body["EndDate"] != "2024-01-10" {
		t.Fatalf("EndDate should default to StartDate: %#v", body)
	}
}

func TestSubmitAbsence_SendsOneBatch(t *testing.T) {
	svcFake, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/SubmitStudentAbsenceDetails": reply(http.StatusOK, `{"d":"تم الحفظ"}`),
	})
	entries := []AbsenceEntry{{StudentID: "9", AbsenceType: AbsenceAbsent}, {StudentID: "10", AbsenceType: AbsenceLate}}

	ack, err := c.SubmitAbsence(ctxT(t), Session{UserID: "1", SchoolID: "3"}, Filter{ClassID: "11", GradeID: "4"}, "2024-01-10", entries)
	if err != nil {
		t.Fatalf("SubmitAbsence returned error: %v", err)
	}
	if ack.Message != "تم الحفظ" {
		t.Fatalf("Ack = %#v", ack)
	}
	if n := len(svcFake.paths()); n != 1 {
		t.Fatalf("requests = %d, want 1", n)
	}
	body := svcFake.last().body
	details, _ := body["StdsAbsDetails"].([]any)
	if len(details) != 2 || body["ClassId"] != "11" || body["StartDate"] != "2024-01-10" {
		t.Fatalf("payload = %#v", body)
	}
}

func TestSubmitMarks_Defaults(t *testing.T) {
	svcFake, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/SubmitStudentMarksDetails": reply(http.StatusOK, `{"d":{"Message":"ok"}}`),
	})
	_, err := c.SubmitMarks(ctxT(t), Session{UserID: "1"}, MarksConfig{ClassID: "11", ExamID: "e"}, nil)
	if err != nil {
		t.Fatalf("SubmitMarks returned error: %v", err)
	}
	body := svcFake.last().body
	if body["EduSysId"] != "1" || body["StageId"] != "0" || body["ExamGradeType"] != float64(1) {
		t.Fatalf("defaults not applied: %#v", body)
	}
	if details, ok := body["StdsGradeDetails"].([]any); !ok || len(details) != 0 {
		t.Fatalf("StdsGradeDetails = %#v, want empty array", body["StdsGradeDetails"])
	}
}

func TestSubmit_Failures(t *testing.T) {
	_, c := newFakeService(t, map[string]func(http.ResponseWriter){
		svc + "/SubmitStudentAbsenceDetails": reply(http.StatusOK, `{"d":"Fail: session expired"}`),
		svc + "/SubmitStudentMarksDetails":   reply(http.StatusBadGateway, ``),
	})
	_, err := c.SubmitAbsence(ctxT(t), Session{}, Filter{}, "d", nil)
	if KindOf(err) != KindRejected {
		t.Fatalf("absence err = %v, want KindRejected", err)
	}
	_, err = c.SubmitMarks(ctxT(t), Session{}, MarksConfig{}, nil)
	var me *Error
	if !errors.As(err, &me) || me.Kind != KindStatus || me.Status != http.StatusBadGateway {
		t.Fatalf("marks err = %v, want KindStatus 502", err)
	}
	if Message(err) != "حالة غير متوقعة: 502" {
		t.Fatalf("Message = %q", Message(err))
	}
}
