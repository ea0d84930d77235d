package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_UsesGivenValue(t *testing.T) {
	p := Prompter{NonInteractive: true}

	got, err := p.Text("alice", "Username")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	got, err = p.Secret("s3cret", "Password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestPrompter_NonInteractiveRequiresValue(t *testing.T) {
	p := Prompter{NonInteractive: true}

	_, err := p.Secret("  ", "Password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required in non-interactive mode")
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "newline terminated", input: "hunter2\n", want: "hunter2"},
		{name: "crlf", input: "hunter2\r\n", want: "hunter2"},
		{name: "no newline", input: "hunter2", want: "hunter2"},
		{name: "only first line", input: "one\ntwo\n", want: "one"},
		{name: "empty", input: "", wantErr: ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLine(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
