//go:build unit

package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"resource-hub/internal/domain/user"
	"resource-hub/internal/handler/middleware"
	"resource-hub/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type RequestLoggerTestSuite struct {
	suite.Suite
	router *gin.Engine
	logs   *bytes.Buffer
	actor  user.Actor
}

func (s *RequestLoggerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.logs = &bytes.Buffer{}
	s.actor = user.Actor{ID: uuid.New(), Role: user.RoleStaff}

	s.router = gin.New()
	s.router.Use(middleware.RequestLogger(slog.New(slog.NewJSONHandler(s.logs, nil))))
	s.router.GET("/anonymous", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	s.router.GET("/signed-in", func(c *gin.Context) {
		middleware.SetActor(c, s.actor)
		c.Status(http.StatusNoContent)
	})
	s.router.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
}

func (s *RequestLoggerTestSuite) SetupSubTest() {
	s.logs.Reset()
}

func TestRequestLoggerSuite(t *testing.T) {
	suite.Run(t, new(RequestLoggerTestSuite))
}

func (s *RequestLoggerTestSuite) entry() map[string]any {
	var line map[string]any
	s.Require().NoError(json.Unmarshal(s.logs.Bytes(), &line))
	return line
}

func (s *RequestLoggerTestSuite) TestRequestID() {
	s.Run("generated when absent", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/anonymous", nil, "")

		id := rec.Header().Get("X-Request-ID")
		s.Require().NoError(uuid.Validate(id))
		s.Equal(id, rec.Body.String())
		s.Equal(id, s.entry()["request_id"])
	})

	s.Run("caller supplied id is echoed", func() {
		req := nethttptest.NewRequest(http.MethodGet, "/anonymous", http.NoBody)
		req.Header.Set("X-Request-ID", "trace-42")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal("trace-42", rec.Header().Get("X-Request-ID"))
		s.Equal("trace-42", s.entry()["request_id"])
	})
}

func (s *RequestLoggerTestSuite) TestCompletionLine() {
	s.Run("actor set by a later handler is logged", func() {
		httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/signed-in", nil, "")

		line := s.entry()
		s.Equal("INFO", line["level"])
		s.Equal(s.actor.ID.String(), line["user_id"])
		s.Equal("staff", line["role"])
		s.EqualValues(http.StatusNoContent, line["status_code"])
	})

	s.Run("server errors log at error level", func() {
		httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/broken", nil, "")

		line := s.entry()
		s.Equal("ERROR", line["level"])
		s.NotContains(line, "user_id")
	})
}
