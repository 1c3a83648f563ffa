package pagination

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := Parse("", "")
		require.NoError(t, err)
		assert.False(t, req.Cursor.Valid)
		assert.Equal(t, DefaultLimit, req.Limit)
		assert.Equal(t, int32(DefaultLimit+1), req.Fetch())
	})

	t.Run("cursor", func(t *testing.T) {
		id := uuid.New()
		req, err := Parse(id.String(), "5")
		require.NoError(t, err)
		assert.True(t, req.Cursor.Valid)
		assert.Equal(t, id, req.Cursor.UUID)
		assert.Equal(t, 5, req.Limit)
	})

	t.Run("limit clamped", func(t *testing.T) {
		req, err := Parse("", "1000")
		require.NoError(t, err)
		assert.Equal(t, MaxLimit, req.Limit)

		req, err = Parse("", "0")
		require.NoError(t, err)
		assert.Equal(t, 1, req.Limit)
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := Parse("not-a-uuid", "")
		assert.ErrorIs(t, err, ErrInvalidCursor)

		_, err = Parse("", "ten")
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})
}

type row struct{ id uuid.UUID }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: uuid.New()}
	}
	return out
}

func TestBuild(t *testing.T) {
	id := func(r row) uuid.UUID { return r.id }

	t.Run("extra row becomes cursor", func(t *testing.T) {
		in := rows(4)
		page := Build(in, 3, id)
		assert.Len(t, page.Items, 3)
		require.NotNil(t, page.NextCursor)
		assert.Equal(t, in[3].id.String(), *page.NextCursor)
	})

	t.Run("last page", func(t *testing.T) {
		page := Build(rows(3), 3, id)
		assert.Len(t, page.Items, 3)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("empty", func(t *testing.T) {
		page := Build[row](nil, 10, id)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Nil(t, page.NextCursor)
	})
}

func TestMap(t *testing.T) {
	in := rows(3)
	page := Map(Build(in, 2, func(r row) uuid.UUID { return r.id }), func(r row) string { return r.id.String() })
	assert.Equal(t, []string{in[0].id.String(), in[1].id.String()}, page.Items)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, in[2].id.String(), *page.NextCursor)
}
