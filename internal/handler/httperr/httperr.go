package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes. Clients branch on these, never on Message.
const (
	CodeConflict             = "conflict"
	CodeOutOfHours           = "out_of_hours"
	CodeInvalidTransition    = "invalid_transition"
	CodeIdempotencyKeyReused = "idempotency_key_reused"
	CodeForbidden            = "forbidden"
	CodeUnauthorized         = "unauthorized"
	CodeNotFound             = "not_found"
	CodeUnavailable          = "unavailable"
	CodeRateLimited          = "rate_limited"
	CodeValidation           = "validation"
	CodeInternal             = "internal"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, code, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}

// AbortWithError derives the code from status. err is kept on the gin
// context so the request logger can report the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	AbortWithCode(c, status, codeFor(status), err, msg, detail)
}

func AbortWithCode(c *gin.Context, status int, code string, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithCode: err cannot be nil")
	}

	resp := NewResponse(status, code, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}
