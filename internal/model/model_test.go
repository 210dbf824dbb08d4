package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskResultFailed(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		StatusSuccess: false,
		StatusPlanned: false,
		StatusFailed:  true,
		StatusSkipped: true,
	}

	for status, want := range cases {
		require.Equal(t, want, TaskResult{Task: "clean", Status: status}.Failed(), status)
	}
}
