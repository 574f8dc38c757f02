package workerpool

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmitAndGetSquares(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	futures := make([]*Future[int], 10)
	for i := 0; i < 10; i++ {
		i := i
		futures[i] = Submit(pool, func() (int, error) {
			return i * i, nil
		})
	}

	got := make([]int, 10)
	for i, f := range futures {
		v, err := f.Get()
		require.NoError(t, err)
		got[i] = v
	}

	require.Equal(t, []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81}, got)
}

func TestFutureReraisesTaskFault(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	boom := errors.New("boom")
	future := Submit(pool, func() (int, error) {
		return 0, boom
	})

	_, err := future.Get()
	require.ErrorIs(t, err, boom)
}

func TestSubmitAfterCloseIsRejected(t *testing.T) {
	pool := New(1)
	pool.Close()

	future := Submit(pool, func() (int, error) {
		return 1, nil
	})

	_, err := future.Get()
	require.ErrorIs(t, err, ErrStopped)
}

func TestSizeZeroMeansHardwareParallelism(t *testing.T) {
	pool := New(0)
	defer pool.Close()
	require.GreaterOrEqual(t, pool.Size(), 1)
}

func TestAllTasksCompleteBeforeClose(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	var counter int64
	futures := make([]*Future[struct{}], 50)
	for i := range futures {
		futures[i] = Submit(pool, func() (struct{}, error) {
			atomic.AddInt64(&counter, 1)
			return struct{}{}, nil
		})
	}
	for _, f := range futures {
		_, err := f.Get()
		require.NoError(t, err)
	}

	require.EqualValues(t, 50, atomic.LoadInt64(&counter))
}
