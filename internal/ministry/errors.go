package ministry

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a ministry failure.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindEndpointNotFound
	KindStatus
	KindDecode
	KindInvalidCredentials
	KindRejected
	KindNoClasses
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindEndpointNotFound:
		return "endpoint not found"
	case KindStatus:
		return "unexpected status"
	case KindDecode:
		return "decode"
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindRejected:
		return "rejected"
	case KindNoClasses:
		return "no classes"
	default:
		return "unknown"
	}
}

var (
	ErrNotAuthenticated = errors.New("ministry: not logged in")
	ErrNoSelection      = errors.New("ministry: no class selected")
	ErrBusy             = errors.New("ministry: login already in progress")
)

// Error is returned by every Client operation.
type Error struct {
	Kind   Kind
	Op     string // operation, e.g. "login"
	Status int    // HTTP status when one was received
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("ministry %s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a ministry error, or zero for other errors.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return 0
}

// Message renders err as the Arabic text shown to the teacher.
func Message(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.Canceled):
		return "تم إلغاء العملية"
	case errors.Is(err, context.DeadlineExceeded):
		return "انتهت مهلة الاتصال بالخادم"
	case errors.Is(err, ErrNotAuthenticated):
		return "يجب تسجيل الدخول أولاً"
	case errors.Is(err, ErrNoSelection):
		return "اختر الفصل أولاً"
	case errors.Is(err, ErrBusy):
		return "جاري تسجيل الدخول..."
	}

	var me *Error
	if !errors.As(err, &me) {
		return "حدث خطأ غير متوقع"
	}
	switch me.Kind {
	case KindNetwork:
		return "فشل الاتصال بالإنترنت"
	case KindEndpointNotFound:
		return "تعذر الاتصال بالخادم. يرجى التأكد من الرابط في الإعدادات."
	case KindStatus:
		return fmt.Sprintf("حالة غير متوقعة: %d", me.Status)
	case KindDecode:
		return "استجابة غير مفهومة من الخادم"
	case KindInvalidCredentials:
		return "اسم المستخدم أو كلمة المرور غير صحيحة"
	case KindRejected:
		return "رفض الخادم البيانات المرسلة"
	case KindNoClasses:
		return "لم يتم العثور على فصول للمعلم"
	default:
		return "حدث خطأ غير متوقع"
	}
}
