package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zylch/zylch-go/internal/adapter"
)

func TestClassifyGatewayError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want outcome
	}{
		{name: "unauthorized", err: adapter.ErrUnauthorized, want: outcomeAuth},
		{name: "forbidden wrapped", err: fmt.Errorf("apply: %w", adapter.ErrForbidden), want: outcomeAuth},
		{name: "bad request", err: adapter.ErrBadRequest, want: outcomeValidation},
		{name: "unprocessable", err: adapter.ErrUnprocessable, want: outcomeValidation},
		{name: "not found", err: adapter.ErrNotFound, want: outcomeConflict},
		{name: "conflict", err: adapter.ErrConflict, want: outcomeConflict},
		{name: "gone", err: adapter.ErrGone, want: outcomeConflict},
		{name: "server error", err: adapter.ErrInternalServerError, want: outcomeTransient},
		{name: "plain transport error", err: errors.New("connection refused"), want: outcomeTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyGatewayError(tt.err))
		})
	}
}
