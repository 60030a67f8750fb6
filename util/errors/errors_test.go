package errors

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDeadlineError(t *testing.T) {
	require := require.New(t)
	require.True(IsDeadlineError(ErrTimeout))
	require.True(IsDeadlineError(os.ErrDeadlineExceeded))
	require.True(IsDeadlineError(fmt.Errorf("read udp: %w", os.ErrDeadlineExceeded)))
	require.False(IsDeadlineError(io.EOF))
	require.False(IsDeadlineError(nil))
}
