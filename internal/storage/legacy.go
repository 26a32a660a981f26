package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alzaabi555/rased/internal/classroom"
)

// Keys of the per-field legacy schema.
const (
	KeyStudents            = "studentData"
	KeyClasses             = "classesData"
	KeyHiddenClasses       = "hiddenClasses"
	KeyGroups              = "groupsData"
	KeySchedule            = "scheduleData"
	KeyPeriodTimes         = "periodTimes"
	KeyTeacherName         = "teacherName"
	KeySchoolName          = "schoolName"
	KeySubjectName         = "subjectName"
	KeyGovernorate         = "governorate"
	KeyTeacherAvatar       = "teacherAvatar"
	KeyCurrentSemester     = "currentSemester"
	KeyAssessmentTools     = "assessmentTools"
	KeyGradeSettings       = "gradeSettings"
	KeyCertificateSettings = "certificateSettings"
	KeyDefaultGender       = "defaultStudentGender"
)

// LegacyKeys lists every key the legacy schema uses.
var LegacyKeys = []string{
	KeyStudents, KeyClasses, KeyHiddenClasses, KeyGroups, KeySchedule,
	KeyPeriodTimes, KeyTeacherName, KeySchoolName, KeySubjectName,
	KeyGovernorate, KeyTeacherAvatar, KeyCurrentSemester, KeyAssessmentTools,
	KeyGradeSettings, KeyCertificateSettings, KeyDefaultGender,
}

// LegacyBackend splits the snapshot across individual KV keys, one per
// field, holding JSON or plain strings.
type LegacyBackend struct {
	kv KV
}

var _ Backend = (*LegacyBackend)(nil)

// NewLegacyBackend stores state in kv.
func NewLegacyBackend(kv KV) *LegacyBackend {
	return &LegacyBackend{kv: kv}
}

func (b *LegacyBackend) Name() string { return "legacy" }

// Load reassembles a snapshot from the individual keys. Unreadable keys keep
// their defaults and are reported through an ErrPartial error alongside the
// snapshot.
func (b *LegacyBackend) Load(ctx context.Context) (classroom.Snapshot, error) {
	snap := classroom.DefaultSnapshot()
	r := legacyReader{ctx: ctx, kv: b.kv}

	readJSON(&r, KeyStudents, &snap.Students)
	readJSON(&r, KeyClasses, &snap.Classes)
	readJSON(&r, KeyHiddenClasses, &snap.HiddenClasses)
	readJSON(&r, KeyGroups, &snap.Groups)
	readJSON(&r, KeySchedule, &snap.Schedule)
	readJSON(&r, KeyPeriodTimes, &snap.PeriodTimes)
	readJSON(&r, KeyAssessmentTools, &snap.AssessmentTools)
	readJSON(&r, KeyGradeSettings, &snap.GradeSettings)
	readJSON(&r, KeyCertificateSettings, &snap.CertificateSettings)

	r.str(KeyTeacherName, &snap.TeacherInfo.Name)
	r.str(KeySchoolName, &snap.TeacherInfo.School)
	r.str(KeySubjectName, &snap.TeacherInfo.Subject)
	r.str(KeyGovernorate, &snap.TeacherInfo.Governorate)
	r.str(KeyTeacherAvatar, &snap.TeacherInfo.Avatar)

	var semester, gender string
	r.str(KeyCurrentSemester, &semester)
	r.str(KeyDefaultGender, &gender)
	snap.CurrentSemester = classroom.Semester(semester).Normalize()
	if gender == string(classroom.GenderFemale) {
		snap.DefaultStudentGender = classroom.GenderFemale
	}

	if r.err != nil {
		return classroom.Snapshot{}, r.err
	}
	if !r.found {
		return classroom.Snapshot{}, ErrNotFound
	}
	snap = Normalize(snap)
	if len(r.bad) > 0 {
		return snap, fmt.Errorf("%w: %s", ErrPartial, strings.Join(r.bad, ", "))
	}
	return snap, nil
}

// Save writes every key in a single KV operation.
func (b *LegacyBackend) Save(ctx context.Context, snap classroom.Snapshot) error {
	values := map[string]string{
		KeyTeacherName:     snap.TeacherInfo.Name,
		KeySchoolName:      snap.TeacherInfo.School,
		KeySubjectName:     snap.TeacherInfo.Subject,
		KeyGovernorate:     snap.TeacherInfo.Governorate,
		KeyTeacherAvatar:   snap.TeacherInfo.Avatar,
		KeyCurrentSemester: string(snap.CurrentSemester.Normalize()),
		KeyDefaultGender:   string(snap.DefaultStudentGender),
	}
	jsonFields := map[string]any{
		KeyStudents:            snap.Students,
		KeyClasses:             snap.Classes,
		KeyHiddenClasses:       snap.HiddenClasses,
		KeyGroups:              snap.Groups,
		KeySchedule:            snap.Schedule,
		KeyPeriodTimes:         snap.PeriodTimes,
		KeyAssessmentTools:     snap.AssessmentTools,
		KeyGradeSettings:       snap.GradeSettings,
		KeyCertificateSettings: snap.CertificateSettings,
	}
	for key, v := range jsonFields {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = string(data)
	}
	if err := b.kv.SetMany(ctx, values); err != nil {
		return fmt.Errorf("write legacy keys: %w", err)
	}
	return nil
}

// Clear removes every legacy key.
func (b *LegacyBackend) Clear(ctx context.Context) error {
	return b.kv.Delete(ctx, LegacyKeys...)
}

type legacyReader struct {
	ctx   context.Context
	kv    KV
	found bool
	bad   []string
	err   error
}

func (r *legacyReader) get(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok, err := r.kv.Get(r.ctx, key)
	if err != nil {
		r.err = fmt.Errorf("read %s: %w", key, err)
		return "", false
	}
	if ok {
		r.found = true
	}
	return v, ok
}

func (r *legacyReader) str(key string, dst *string) {
	if v, ok := r.get(key); ok {
		*dst = v
	}
}

// readJSON decodes key into dst. A JSON null or a malformed value leaves
// dst untouched.
func readJSON[T any](r *legacyReader, key string, dst *T) {
	raw, ok := r.get(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		r.bad = append(r.bad, key)
		return
	}
	if strings.TrimSpace(raw) == "null" {
		return
	}
	*dst = v
}
