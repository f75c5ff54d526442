package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope of every failed API call. RequestID echoes
// the X-Request-ID header so a client report can be matched to the server log.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// AbortWithError writes the envelope and keeps err on the gin context for
// the logging middleware.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Detail: detail, RequestID: c.GetString("request_id")}
	resp.Error.Message = msg

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
