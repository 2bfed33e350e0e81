package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldCommit(t *testing.T) {
	live := context.Background()

	stopped, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want bool
	}{
		{name: "handled", ctx: live, want: true},
		{name: "handled just before shutdown", ctx: stopped, want: true},
		{name: "failed while running", ctx: live, err: errors.New("bad payload"), want: true},
		{name: "interrupted by shutdown", ctx: stopped, err: context.Canceled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldCommit(tt.ctx, tt.err))
		})
	}
}
