package testutil

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/scribe/pkg/transport"
)

func TestFakeTransport(t *testing.T) {
	t.Run("should implement the transport interface", func(t *testing.T) {
		fake := NewFakeTransport()
		var _ transport.Client = fake
		assert.True(t, fake.Connected())
	})

	t.Run("should record sends", func(t *testing.T) {
		fake := NewFakeTransport()

		require.NoError(t, fake.SendText(context.Background(), "one", nil))
		require.NoError(t, fake.SendText(context.Background(), "two", []string{"f1"}))

		sent := fake.Sent()
		require.Len(t, sent, 2)
		assert.Equal(t, "one", sent[0].Text)
		assert.Equal(t, []string{"f1"}, sent[1].FileIDs)
	})

	t.Run("should fail sends when configured", func(t *testing.T) {
		fake := NewFakeTransport()
		cause := errors.New("boom")
		fake.FailSendsWith(cause)

		err := fake.SendText(context.Background(), "one", nil)
		assert.ErrorIs(t, err, cause)
		assert.Empty(t, fake.Sent())
	})

	t.Run("should disconnect on close", func(t *testing.T) {
		fake := NewFakeTransport()
		require.NoError(t, fake.Close())
		assert.False(t, fake.Connected())
	})
}
