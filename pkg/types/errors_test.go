package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingSecretErrorMessage(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{
			name:  "single",
			names: []string{"MATCH_PASSWORD"},
			want:  "missing secret: MATCH_PASSWORD",
		},
		{
			name:  "multiple",
			names: []string{"MATCH_DEPLOY_KEY", "MATCH_PASSWORD"},
			want:  "missing secrets: MATCH_DEPLOY_KEY, MATCH_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMissingSecretError(tt.names...)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.names, err.Names)
		})
	}
}

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	base := NewSigningResolutionError("no profile for ios/com.acme.app")
	wrapped := fmt.Errorf("deploy stage: %w", base)

	assert.True(t, IsSigningResolutionError(wrapped))
	assert.False(t, IsMissingSecretError(wrapped))

	var sre *SigningResolutionError
	require.True(t, errors.As(wrapped, &sre))
	assert.Contains(t, sre.Message, "com.acme.app")
}

func TestBuildAndUploadErrorsUnwrap(t *testing.T) {
	cause := errors.New("exit status 65")
	be := NewBuildError("xcodebuild", cause)
	assert.True(t, IsBuildError(be))
	assert.ErrorIs(t, be, cause)
	assert.Contains(t, be.Error(), "exit status 65")

	ue := NewUploadError("altool", nil)
	assert.True(t, IsUploadError(ue))
	assert.NotContains(t, ue.Error(), "<nil>")
}

func TestMissingFieldError(t *testing.T) {
	err := NewMissingFieldError("bundle_id")
	assert.True(t, IsMissingFieldError(err))
	assert.Equal(t, "missing required field: bundle_id", err.Error())
}
