package ringbuf_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/core/ringbuf"
)

func newRing(t *testing.T, size int) *ringbuf.RingBuffer {
	t.Helper()
	r, err := ringbuf.New(make([]byte, size))
	require.NoError(t, err)
	return r
}

// assertInvariants checks the occupancy relations that must hold in every
// quiescent state.
func assertInvariants(t *testing.T, r *ringbuf.RingBuffer) {
	t.Helper()
	used, free := r.UsedSpace(), r.FreeSpace()
	assert.Equal(t, r.Cap()-1, used+free, "used+free")
	assert.Equal(t, used == r.Cap()-1, r.Full(), "Full iff used == cap-1")
	assert.Equal(t, used == 0, r.Empty(), "Empty iff used == 0")
	if r.Cap() > 1 {
		assert.False(t, r.Full() && r.Empty(), "Full and Empty are exclusive")
	}
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	cases := []struct {
		name     string
		storage  []byte
		capacity int
	}{
		{"nil storage", nil, 16},
		{"empty storage", []byte{}, 16},
		{"zero capacity", make([]byte, 16), 0},
		{"negative capacity", make([]byte, 16), -4},
		{"not a power of two", make([]byte, 6), 6},
		{"capacity beyond storage", make([]byte, 8), 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ringbuf.NewWithCapacity(tc.storage, tc.capacity)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, api.ErrInvalidArgument), "got %v", err)
		})
	}

	_, err := ringbuf.New(make([]byte, 6))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	_, err = ringbuf.New(nil)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestNewCapacity16(t *testing.T) {
	r := newRing(t, 16)
	assert.True(t, r.Empty())
	assert.False(t, r.Full())
	assert.Equal(t, 15, r.FreeSpace())
	assert.Equal(t, 0, r.UsedSpace())
	assert.Equal(t, 16, r.Cap())
	assert.Zero(t, r.TotalWritten())
	assert.Zero(t, r.TotalRead())
}

func TestWriteReadSimple(t *testing.T) {
	r := newRing(t, 16)
	in := []byte("foo\x00")

	require.Equal(t, 4, r.Write(in))
	assert.Equal(t, 4, r.UsedSpace())

	out := make([]byte, 16)
	n := r.Read(out)
	require.Equal(t, 4, n)
	assert.Equal(t, in, out[:n])
	assert.Equal(t, 0, r.UsedSpace())
	assert.Equal(t, uint64(4), r.TotalWritten())
	assert.Equal(t, uint64(4), r.TotalRead())
}

func TestWriteReservesOneSlot(t *testing.T) {
	r := newRing(t, 16)
	tmp := make([]byte, 16)
	for i := range tmp {
		tmp[i] = byte(i)
	}

	require.Equal(t, 15, r.Write(tmp))
	assert.True(t, r.Full())
	assert.Equal(t, 0, r.FreeSpace())
	assert.Equal(t, 0, r.Write([]byte{0xff}), "write into a full ring")

	out := make([]byte, 16)
	require.Equal(t, 15, r.Read(out))
	assert.Equal(t, tmp[:15], out[:15])
	assert.True(t, r.Empty())
}

func TestWrapTwice(t *testing.T) {
	r := newRing(t, 16)
	tmp := make([]byte, 16)
	for i := range tmp {
		tmp[i] = byte(i*5 + 3)
	}
	out := make([]byte, 16)
	for round := 0; round < 2; round++ {
		require.Equal(t, 15, r.Write(tmp), "round %d", round)
		require.Equal(t, 15, r.Read(out), "round %d", round)
		assert.Equal(t, tmp[:15], out[:15], "round %d", round)
	}
}

func TestReadEmptyReturnsZero(t *testing.T) {
	r := newRing(t, 8)
	out := make([]byte, 8)
	assert.Equal(t, 0, r.Read(out))
	assert.Equal(t, 0, r.Read(nil))
	assert.Equal(t, 0, r.Write(nil))
	assert.True(t, r.Empty())
}

func TestShortReadLeavesRemainder(t *testing.T) {
	r := newRing(t, 16)
	require.Equal(t, 10, r.Write([]byte("0123456789")))

	out := make([]byte, 4)
	require.Equal(t, 4, r.Read(out))
	assert.Equal(t, "0123", string(out))
	assert.Equal(t, 6, r.UsedSpace())

	rest := make([]byte, 16)
	n := r.Read(rest)
	assert.Equal(t, "456789", string(rest[:n]))
}

func TestWraparoundPreservesOrder(t *testing.T) {
	const capacity = 16
	r := newRing(t, capacity)

	var wpos, rpos int
	out := make([]byte, capacity)
	for iter := 0; iter < 200; iter++ {
		chunk := iter%(capacity-1) + 1
		in := make([]byte, chunk)
		for i := range in {
			in[i] = byte(wpos + i)
		}
		n := r.Write(in)
		require.Equal(t, chunk, n, "ring was drained, chunk must fit")
		wpos += n

		got := r.Read(out)
		for i := 0; i < got; i++ {
			require.Equal(t, byte(rpos+i), out[i], "logical position %d", rpos+i)
		}
		rpos += got
		assertInvariants(t, r)
	}
	assert.Equal(t, wpos, rpos)
	assert.Greater(t, wpos, 10*capacity, "cursor must cross the boundary many times")
}

func TestRandomOpsMatchModel(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		r := newRing(t, 64)
		var model []byte

		for i := 0; i < 2000; i++ {
			if rnd.Intn(2) == 0 {
				in := make([]byte, rnd.Intn(80))
				rnd.Read(in)
				before := r.FreeSpace()
				n := r.Write(in)
				require.LessOrEqual(t, n, before, "write exceeded free space")
				require.Equal(t, min(len(in), before), n)
				model = append(model, in[:n]...)
			} else {
				out := make([]byte, rnd.Intn(80))
				n := r.Read(out)
				require.Equal(t, min(len(out), len(model)), n)
				require.True(t, bytes.Equal(model[:n], out[:n]), "seed %d op %d", seed, i)
				model = model[n:]
			}
			require.Equal(t, len(model), r.UsedSpace())
			assertInvariants(t, r)
		}
	}
}

func TestRoundTripRestoresUsedSpace(t *testing.T) {
	r := newRing(t, 32)
	require.Equal(t, 7, r.Write([]byte("prefix!")))
	before := r.UsedSpace()

	s := bytes.Repeat([]byte{0xa5}, 20)
	require.Equal(t, len(s), r.Write(s))
	skip := make([]byte, before)
	require.Equal(t, before, r.Read(skip))
	out := make([]byte, len(s))
	require.Equal(t, len(s), r.Read(out))
	assert.Equal(t, s, out)
	assert.Equal(t, 0, r.UsedSpace())
}

func TestCapacityOneHoldsNothing(t *testing.T) {
	r := newRing(t, 1)
	assert.Equal(t, 0, r.FreeSpace())
	assert.True(t, r.Empty())
	assert.True(t, r.Full())
	assert.Equal(t, 0, r.Write([]byte("x")))
}

func TestNewWithCapacityUsesPrefix(t *testing.T) {
	storage := bytes.Repeat([]byte{0xee}, 20)
	r, err := ringbuf.NewWithCapacity(storage, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, r.Cap())

	for i := 0; i < 10; i++ {
		r.Write(bytes.Repeat([]byte{byte(i)}, 15))
		r.Read(make([]byte, 15))
	}
	assert.Equal(t, bytes.Repeat([]byte{0xee}, 4), storage[16:], "ring wrote past its capacity")
}

func TestStatsSnapshot(t *testing.T) {
	r := newRing(t, 16)
	r.Write([]byte("abcdef"))
	r.Read(make([]byte, 2))

	s := r.Stats()
	assert.Equal(t, ringbuf.Stats{
		Capacity:     16,
		WritePos:     6,
		ReadPos:      2,
		Used:         4,
		Free:         11,
		Full:         false,
		TotalWritten: 6,
		TotalRead:    2,
	}, s)
	assert.Contains(t, s.String(), "used=4 free=11")
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024, 1 << 30} {
		assert.True(t, ringbuf.IsPowerOfTwo(n), "%d", n)
	}
	for _, n := range []int{0, -2, 3, 6, 1000} {
		assert.False(t, ringbuf.IsPowerOfTwo(n), "%d", n)
	}
}
