package tips_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemes/tip-engine/store/memory"
	"github.com/mnemes/tip-engine/tips"
)

func newTestRegistry() *tips.Registry {
	return tips.NewRegistry(memory.New())
}

func TestRegistry_AddAndList(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	// GIVEN three members with distinct weights
	_, err := reg.Add(ctx, "Alice", dec("1"))
	require.NoError(t, err)
	_, err = reg.Add(ctx, "Bob", dec("2"))
	require.NoError(t, err)
	_, err = reg.Add(ctx, "Carol", dec("2"))
	require.NoError(t, err)

	// WHEN listing
	members, err := reg.List(ctx)
	require.NoError(t, err)

	// THEN order is points desc, then name asc
	require.Len(t, members, 3)
	assert.Equal(t, "Bob", members[0].Name)
	assert.Equal(t, "Carol", members[1].Name)
	assert.Equal(t, "Alice", members[2].Name)
}

func TestRegistry_Add_TrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	m, err := reg.Add(ctx, "  Alice  ", dec("1"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", m.Name)
}

func TestRegistry_Add_Rejections(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	_, err := reg.Add(ctx, "", dec("1"))
	assert.ErrorIs(t, err, tips.ErrEmptyName)

	_, err = reg.Add(ctx, "   ", dec("1"))
	assert.ErrorIs(t, err, tips.ErrEmptyName)

	// The summary sentinel can never become a staff name.
	_, err = reg.Add(ctx, tips.SummaryTag, dec("1"))
	assert.ErrorIs(t, err, tips.ErrReservedName)

	_, err = reg.Add(ctx, "Alice", dec("-1"))
	assert.ErrorIs(t, err, tips.ErrInvalidWeight)
}

func TestRegistry_Add_DuplicateName(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	_, err := reg.Add(ctx, "Alice", dec("1"))
	require.NoError(t, err)

	_, err = reg.Add(ctx, "Alice", dec("3"))
	assert.ErrorIs(t, err, tips.ErrDuplicateName)
}

func TestRegistry_Remove_BatchAndMissing(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	_, err := reg.Add(ctx, "Alice", dec("1"))
	require.NoError(t, err)
	_, err = reg.Add(ctx, "Bob", dec("1"))
	require.NoError(t, err)

	// Removing a mix of present and absent names succeeds and drops
	// only what exists.
	require.NoError(t, reg.Remove(ctx, []string{"Alice", "Nobody"}))

	members, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Bob", members[0].Name)

	// Empty batch is a no-op.
	require.NoError(t, reg.Remove(ctx, nil))
}

func TestRegistry_UpdatePoints(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	m, err := reg.Add(ctx, "Alice", dec("1"))
	require.NoError(t, err)

	require.NoError(t, reg.UpdatePoints(ctx, m.ID, dec("2.5")))

	members, err := reg.List(ctx)
	require.NoError(t, err)
	assert.True(t, members[0].Points.Equal(dec("2.5")))

	assert.ErrorIs(t, reg.UpdatePoints(ctx, m.ID, dec("-1")), tips.ErrInvalidWeight)
	assert.ErrorIs(t, reg.UpdatePoints(ctx, 9999, dec("1")), tips.ErrStaffNotFound)
}

func TestRegistry_Resolve(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	_, err := reg.Add(ctx, "Alice", dec("2"))
	require.NoError(t, err)
	_, err = reg.Add(ctx, "Bob", dec("1"))
	require.NoError(t, err)

	// Selection order is preserved regardless of registry ordering.
	got, err := reg.Resolve(ctx, []string{"Bob", "Alice"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].Name)
	assert.True(t, got[0].Points.Equal(dec("1")))
	assert.Equal(t, "Alice", got[1].Name)
	assert.True(t, got[1].Points.Equal(dec("2")))
}

func TestRegistry_Resolve_UnknownName(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	_, err := reg.Add(ctx, "Alice", dec("1"))
	require.NoError(t, err)

	_, err = reg.Resolve(ctx, []string{"Alice", "Ghost"})
	require.Error(t, err)

	var unknown *tips.UnknownStaffError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Ghost", unknown.Name)
}

func TestRegistry_Resolve_Empty(t *testing.T) {
	reg := newTestRegistry()
	_, err := reg.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, tips.ErrNoParticipants)
}
