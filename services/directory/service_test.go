package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	service, err := NewService()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("exact alias", func(t *testing.T) {
		inst, confidence, err := service.Resolve(ctx, "Merrimack")
		require.NoError(t, err)
		require.Equal(t, "Merrimack College", inst.Name)
		require.Equal(t, "https://merrimackathletics.com", inst.URL)
		require.Equal(t, ConfidenceHigh, confidence)
	})

	t.Run("schedule marker stripped", func(t *testing.T) {
		inst, confidence, err := service.Resolve(ctx, "Merrimack (DH)")
		require.NoError(t, err)
		require.Equal(t, "Merrimack College", inst.Name)
		require.Equal(t, ConfidenceHigh, confidence)
	})

	t.Run("exact beats substring", func(t *testing.T) {
		inst, confidence, err := service.Resolve(ctx, "Connecticut College")
		require.NoError(t, err)
		require.Equal(t, "Connecticut College", inst.Name)
		require.Equal(t, ConfidenceHigh, confidence)
	})

	t.Run("substring match is medium confidence", func(t *testing.T) {
		inst, confidence, err := service.Resolve(ctx, "Bowdoin College Polar Bears Baseball")
		require.NoError(t, err)
		require.Equal(t, "Bowdoin College", inst.Name)
		require.Equal(t, ConfidenceMedium, confidence)
	})

	t.Run("miss", func(t *testing.T) {
		_, _, err := service.Resolve(ctx, "Hogwarts")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := service.Resolve(ctx, "   ")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNewServiceFromJSON(t *testing.T) {
	raw := []byte(`[{"name": "Test School", "url": "https://testsports.com", "aliases": ["test"]}]`)
	service, err := NewServiceFromJSON(raw)
	require.NoError(t, err)

	inst, _, err := service.Resolve(context.Background(), "TEST")
	require.NoError(t, err)
	require.Equal(t, "https://testsports.com", inst.URL)
}
