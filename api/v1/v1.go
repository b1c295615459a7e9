package v1

import (
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Response is the envelope every endpoint answers with. List payloads
// carry {entry, count, page_count} inside Payload.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Payload interface{} `json:"payload,omitempty"`
}

func HandlerSuccess(c *app.RequestContext, payload interface{}) {
	resp := Response{Code: errorCodeMap[ErrSuccess], Message: ErrSuccess.Error(), Payload: payload}
	c.JSON(consts.StatusOK, resp)
}

func HandlerError(c *app.RequestContext, httpCode int, err error) {
	resp := Response{Code: errorCodeMap[err], Message: err.Error()}
	if _, ok := errorCodeMap[err]; !ok {
		resp = Response{Code: 500, Message: "unknown error"}
	}
	c.JSON(httpCode, resp)
}

var errorCodeMap = map[error]int{}

func newError(code int, msg string) error {
	err := errors.New(msg)
	errorCodeMap[err] = code
	return err
}

// CodeOf returns the wire code registered for err, or 500.
func CodeOf(err error) int {
	if code, ok := errorCodeMap[err]; ok {
		return code
	}
	return 500
}
