package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_SkipsReservedPrefix(t *testing.T) {
	r := New()

	addr, err := r.Allocate(ZoneWord)
	require.NoError(t, err)
	assert.Equal(t, 100, addr.Index)
	assert.False(t, addr.Retentive)

	next, err := r.Allocate(ZoneWord)
	require.NoError(t, err)
	assert.Equal(t, 101, next.Index)

	bit, err := r.Allocate(ZoneBit)
	require.NoError(t, err)
	assert.Equal(t, "%M0", bit.String())
}

func TestAllocate_DoesNotReuseExplicitIndex(t *testing.T) {
	r := New()
	_, err := r.AllocateAt(ZoneWord, 100)
	require.NoError(t, err)

	addr, err := r.Allocate(ZoneWord)
	require.NoError(t, err)
	assert.Equal(t, 101, addr.Index)
}

func TestAllocateAt_Conflict(t *testing.T) {
	r := New()
	_, err := r.AllocateAt(ZoneBit, 7)
	require.NoError(t, err)

	_, err = r.AllocateAt(ZoneBit, 7)
	require.ErrorIs(t, err, ErrAddressConflict)
	assert.Contains(t, err.Error(), "%M7")
}

func TestAllocateAt_RetentiveIsFlaggedNotRejected(t *testing.T) {
	r := New()

	raw, err := r.AllocateAt(ZoneWord, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, r.ZoneBoundary(ZoneWord))
	assert.False(t, raw.Retentive, "index 100 sits on the boundary and must reset on restart")

	count, err := r.AllocateAt(ZoneWord, 50)
	require.NoError(t, err)
	assert.True(t, count.Retentive)
}

func TestAllocateAt_OutOfRange(t *testing.T) {
	r := New(WithZoneLayout(ZoneTimer, ZoneLayout{Capacity: 4}))
	_, err := r.AllocateAt(ZoneTimer, 4)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = r.AllocateAt(ZoneTimer, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestAllocate_Exhausted(t *testing.T) {
	r := New(WithZoneLayout(ZoneTimer, ZoneLayout{Capacity: 2}))
	for i := 0; i < 2; i++ {
		_, err := r.Allocate(ZoneTimer)
		require.NoError(t, err)
	}
	_, err := r.Allocate(ZoneTimer)
	require.ErrorIs(t, err, ErrZoneExhausted)
}

func TestAllocateRetentive(t *testing.T) {
	r := New(WithZoneLayout(ZoneWord, ZoneLayout{Capacity: 10, RetentiveBoundary: 2, Reserved: 2}))

	first, err := r.AllocateRetentive(ZoneWord)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Index)
	assert.True(t, first.Retentive)

	_, err = r.AllocateRetentive(ZoneWord)
	require.NoError(t, err)

	_, err = r.AllocateRetentive(ZoneWord)
	require.ErrorIs(t, err, ErrZoneExhausted)
}

func TestAllocateChannel(t *testing.T) {
	r := New()
	addr, err := r.AllocateChannel(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "%IW1.3", addr.String())

	_, err = r.AllocateChannel(1, 3)
	require.ErrorIs(t, err, ErrAddressConflict)

	_, err = r.Allocate(ZoneAnalog)
	require.ErrorIs(t, err, ErrZoneMismatch)
}

func TestBind(t *testing.T) {
	t.Run("duplicate symbol on a different address", func(t *testing.T) {
		r := New()
		first, err := r.Allocate(ZoneBit)
		require.NoError(t, err)
		second, err := r.Allocate(ZoneBit)
		require.NoError(t, err)

		_, err = r.Bind(first, "LEVEL_LOW", "low level switch")
		require.NoError(t, err)

		_, err = r.Bind(second, "LEVEL_LOW", "")
		require.ErrorIs(t, err, ErrDuplicateSymbol)
		assert.Contains(t, err.Error(), "LEVEL_LOW")
	})

	t.Run("same name same address is idempotent", func(t *testing.T) {
		r := New()
		addr, err := r.Allocate(ZoneBit)
		require.NoError(t, err)

		_, err = r.Bind(addr, "ENABLE", "")
		require.NoError(t, err)
		sym, err := r.Bind(addr, "ENABLE", "")
		require.NoError(t, err)
		assert.Equal(t, "ENABLE", sym.Name)
		assert.Len(t, r.Symbols(), 1)
	})

	t.Run("duplicate address", func(t *testing.T) {
		r := New()
		addr, err := r.Allocate(ZoneBit)
		require.NoError(t, err)

		_, err = r.Bind(addr, "A", "")
		require.NoError(t, err)
		_, err = r.Bind(addr, "B", "")
		require.ErrorIs(t, err, ErrDuplicateAddress)
	})

	t.Run("unallocated address", func(t *testing.T) {
		r := New()
		_, err := r.Bind(Address{Zone: ZoneBit, Index: 3}, "A", "")
		require.ErrorIs(t, err, ErrUnknownAddress)
	})
}

func TestResolve(t *testing.T) {
	r := New()
	addr, err := r.Allocate(ZoneBit)
	require.NoError(t, err)
	_, err = r.Bind(addr, "ENABLE", "")
	require.NoError(t, err)

	got, err := r.Resolve("ENABLE")
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	_, err = r.Resolve("MISSING")
	require.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = r.ResolveZone("ENABLE", ZoneTimer)
	require.ErrorIs(t, err, ErrZoneMismatch)

	got, err = r.ResolveZone("ENABLE", ZoneWord, ZoneBit)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestAddresses_Ordered(t *testing.T) {
	r := New()
	_, err := r.AllocateAt(ZoneWord, 120)
	require.NoError(t, err)
	_, err = r.AllocateAt(ZoneWord, 5)
	require.NoError(t, err)
	_, err = r.Allocate(ZoneWord)
	require.NoError(t, err)

	var got []string
	for _, a := range r.Addresses(ZoneWord) {
		got = append(got, a.String())
	}
	assert.Equal(t, []string{"%MW5", "%MW100", "%MW120"}, got)
}
