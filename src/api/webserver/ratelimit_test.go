package webserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bandhall/bandhall/src/api/governance"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(3, time.Minute)

	r := gin.New()
	r.POST("/x", func(c *gin.Context) { c.Set("uid", "u1"); c.Next() }, RateLimitMiddleware(limiter),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code, i)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestErrStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{governance.ErrNotFound, http.StatusNotFound},
		{governance.ErrNotAuthorized, http.StatusForbidden},
		{governance.ErrVotingClosed, http.StatusConflict},
		{governance.ErrAlreadyClosed, http.StatusConflict},
		{governance.ErrInvalidConfig, http.StatusInternalServerError},
		{errors.New("mysql is down"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", governance.ErrNotAuthorized), http.StatusForbidden},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errStatus(tt.err), tt.err.Error())
	}
}
