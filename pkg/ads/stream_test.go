package ads

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_Recv(t *testing.T) {
	t.Run("yields batches then EOF", func(t *testing.T) {
		body := `[
			{"results":[{"campaign":{"id":"991"}}],"requestId":"req-1"},
			{"results":[{"campaign":{"id":"992"}},{"campaign":{"id":"993"}}],"requestId":"req-1"}
		]`
		stream, err := NewStream(io.NopCloser(strings.NewReader(body)))
		require.NoError(t, err)

		first, err := stream.Recv()
		require.NoError(t, err)
		require.Len(t, first.Results, 1)
		assert.Equal(t, "req-1", first.RequestID)

		second, err := stream.Recv()
		require.NoError(t, err)
		assert.Len(t, second.Results, 2)

		_, err = stream.Recv()
		assert.ErrorIs(t, err, io.EOF)

		// Recv stays at EOF once drained.
		_, err = stream.Recv()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("empty response", func(t *testing.T) {
		stream, err := NewStream(io.NopCloser(strings.NewReader(`[]`)))
		require.NoError(t, err)

		_, err = stream.Recv()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("non array response", func(t *testing.T) {
		_, err := NewStream(io.NopCloser(strings.NewReader(`{"error":{}}`)))
		require.Error(t, err)
	})

	t.Run("recv after close", func(t *testing.T) {
		stream, err := NewStream(io.NopCloser(strings.NewReader(`[{"results":[]}]`)))
		require.NoError(t, err)
		require.NoError(t, stream.Close())

		_, err = stream.Recv()
		assert.ErrorIs(t, err, io.EOF)
	})
}
