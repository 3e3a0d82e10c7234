package main

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestTexts(t *testing.T) {
	longLine := strings.Repeat("政", 100*1024)
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  []string
	}{
		{
			name:  "arguments win",
			args:  []string{"非政府"},
			stdin: "ignored\n",
			want:  []string{"非政府"},
		},
		{
			name:  "stdin lines",
			stdin: "非政府\n政府\n",
			want:  []string{"非政府", "政府"},
		},
		{
			name:  "line longer than default scanner buffer",
			stdin: longLine + "\n人頭\n",
			want:  []string{longLine, "人頭"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := texts(tt.args, strings.NewReader(tt.stdin))
			assert.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTexts_ReadError(t *testing.T) {
	readErr := errors.New("broken pipe")
	_, err := texts(nil, iotest.ErrReader(readErr))
	assert.True(t, errors.Is(err, readErr))

	_, err = texts(nil, strings.NewReader(strings.Repeat("a", maxLineSize+1)))
	assert.Error(t, err)
}
