package gin

import (
	"net/http"

	"github.com/fwojciec/postcard"
	"github.com/gin-gonic/gin"
)

// envelope is the JSON shape of every API response.
type envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func success(data any) envelope {
	return envelope{OK: true, Data: data}
}

func failure(msg string) envelope {
	return envelope{OK: false, Error: msg}
}

var codes = map[string]int{
	postcard.EINVALID:  http.StatusBadRequest,
	postcard.ENOTFOUND: http.StatusNotFound,
	postcard.EUPSTREAM: http.StatusBadGateway,
	postcard.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a failure envelope and aborts the request.
// Internal errors are logged and their details hidden from the client.
func (s *Server) Error(c *gin.Context, err error) {
	code := postcard.ErrorCode(err)
	if code == postcard.EINTERNAL {
		s.logger.Error("http error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err,
		)
	}
	c.AbortWithStatusJSON(ErrorStatusCode(code), failure(postcard.ErrorMessage(err)))
}
