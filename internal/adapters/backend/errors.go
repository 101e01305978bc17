package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	perr "reviewlens/internal/platform/errors"

	json "github.com/goccy/go-json"
)

// Detail codes the backend returns for auth flows
const (
	DetailBadCredentials   = "LOGIN_BAD_CREDENTIALS"
	DetailUserExists       = "REGISTER_USER_ALREADY_EXISTS"
	DetailInvalidPassword  = "REGISTER_INVALID_PASSWORD"
	DetailEmailTaken       = "UPDATE_USER_EMAIL_ALREADY_EXISTS"
	DetailUserNotVerified  = "LOGIN_USER_NOT_VERIFIED"
	DetailUpdatePassword   = "UPDATE_USER_INVALID_PASSWORD"
)

// StatusError is a non 2xx reply from the backend
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend replied %d", e.Status)
	}
	return fmt.Sprintf("backend replied %d: %s", e.Status, e.Detail)
}

// StatusOf returns the backend status carried by err, 0 when there is none
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// DetailOf returns the backend detail carried by err
func DetailOf(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

var codeByStatus = map[int]perr.ErrorCode{
	http.StatusBadRequest:          perr.ErrorCodeValidation,
	http.StatusUnauthorized:        perr.ErrorCodeUnauthorized,
	http.StatusForbidden:           perr.ErrorCodeForbidden,
	http.StatusNotFound:            perr.ErrorCodeNotFound,
	http.StatusConflict:            perr.ErrorCodeConflict,
	http.StatusUnprocessableEntity: perr.ErrorCodeInvalidArgument,
	http.StatusTooManyRequests:     perr.ErrorCodeTooManyRequests,
}

// statusError maps a reply to a coded error wrapping *StatusError
func statusError(status int, body []byte) error {
	se := &StatusError{Status: status, Detail: parseDetail(body)}
	code, ok := codeByStatus[status]
	if !ok {
		code = perr.ErrorCodeUpstream
	}
	msg := se.Detail
	if msg == "" || status >= 500 {
		msg = strings.ToLower(http.StatusText(status))
		if msg == "" {
			msg = "unexpected backend reply"
		}
	}
	return perr.Wrap(se, code, msg)
}

// parseDetail reads FastAPI style {"detail": ...} bodies
// detail is a string, a {"code","reason"} object, or a list of {"loc","msg"} validation items
func parseDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if len(body) == 0 || json.Unmarshal(body, &env) != nil || len(env.Detail) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(env.Detail, &s) == nil {
		return s
	}

	var obj struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	}
	if json.Unmarshal(env.Detail, &obj) == nil && obj.Code != "" {
		return obj.Code
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if json.Unmarshal(env.Detail, &items) == nil && len(items) > 0 {
		parts := make([]string, 0, len(items))
		for _, it := range items {
			field := ""
			if n := len(it.Loc); n > 0 {
				field = fmt.Sprint(it.Loc[n-1])
			}
			if field != "" {
				parts = append(parts, field+": "+it.Msg)
			} else {
				parts = append(parts, it.Msg)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
