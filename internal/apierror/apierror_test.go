package apierror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name       string
		err        *apierror.Error
		wantStatus int
		wantCause  error
	}{
		{
			name:       "not found",
			err:        apierror.NotFound("trip not found"),
			wantStatus: http.StatusNotFound,
			wantCause:  apierror.ErrNotFound,
		},
		{
			name:       "bad request with cause",
			err:        apierror.BadRequest("invalid trip payload", cause),
			wantStatus: http.StatusBadRequest,
			wantCause:  cause,
		},
		{
			name:       "bad request without cause",
			err:        apierror.BadRequest("invalid trip payload", nil),
			wantStatus: http.StatusBadRequest,
			wantCause:  apierror.ErrBadRequest,
		},
		{
			name:       "unauthorized",
			err:        apierror.Unauthorized("missing credentials"),
			wantStatus: http.StatusUnauthorized,
			wantCause:  apierror.ErrUnauthorized,
		},
		{
			name:       "forbidden",
			err:        apierror.Forbidden("content editor role required"),
			wantStatus: http.StatusForbidden,
			wantCause:  apierror.ErrForbidden,
		},
		{
			name:       "conflict",
			err:        apierror.Conflict("duplicate amenity", nil),
			wantStatus: http.StatusConflict,
			wantCause:  apierror.ErrConflict,
		},
		{
			name:       "internal",
			err:        apierror.Internal("failed to list trips", cause),
			wantStatus: http.StatusInternalServerError,
			wantCause:  cause,
		},
		{
			name:       "unavailable",
			err:        apierror.Unavailable("backend unreachable", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCause:  apierror.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.True(t, errors.Is(tt.err, tt.wantCause))
		})
	}
}

func TestError_Message(t *testing.T) {
	withCause := apierror.Internal("failed to list trips", errors.New("connection refused"))
	assert.Equal(t, "failed to list trips: connection refused", withCause.Error())

	bare := &apierror.Error{Status: http.StatusTeapot, Message: "short and stout"}
	assert.Equal(t, "short and stout", bare.Error())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(apierror.NotFound("gone")))
	assert.Equal(t, http.StatusInternalServerError, apierror.StatusOf(errors.New("plain")))

	wrapped := apierror.Forbidden("nope")
	assert.Equal(t, http.StatusForbidden, apierror.StatusOf(wrapped))
}

func TestStatusOf_UnwrapsNestedErrors(t *testing.T) {
	inner := apierror.NotFound("ship not found")
	outer := errors.Join(errors.New("context"), inner)

	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(outer))
	assert.True(t, apierror.IsNotFound(outer))
}

func TestIsHelpers(t *testing.T) {
	require.True(t, apierror.IsNotFound(apierror.NotFound("x")))
	require.False(t, apierror.IsNotFound(apierror.BadRequest("x", nil)))
	require.True(t, apierror.IsBadRequest(apierror.BadRequest("x", nil)))
}
