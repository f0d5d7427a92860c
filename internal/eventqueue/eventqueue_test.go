package eventqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventOrdering(t *testing.T) {
	q := New()
	var order []uint64

	q.Schedule(30, func(any) { order = append(order, q.Now()) }, nil)
	q.Schedule(10, func(any) { order = append(order, q.Now()) }, nil)
	q.Schedule(20, func(any) { order = append(order, q.Now()) }, nil)

	for q.Pending() {
		require.True(t, q.ProcessNext())
	}

	assert.Equal(t, []uint64{10, 20, 30}, order)
}

func TestProcessNextEmptyQueue(t *testing.T) {
	q := New()
	assert.False(t, q.ProcessNext())
	assert.Equal(t, uint64(0), q.Now())
}

func TestTiesBreakByInsertionOrder(t *testing.T) {
	q := New()
	var order []int

	q.Schedule(5, func(any) { order = append(order, 1) }, nil)
	q.Schedule(5, func(any) { order = append(order, 2) }, nil)
	q.Schedule(5, func(any) { order = append(order, 3) }, nil)

	q.DrainUntil(func() bool { return !q.Pending() })

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestScheduleDuringCallback(t *testing.T) {
	q := New()
	var order []string

	q.Schedule(10, func(any) {
		order = append(order, "first")
		q.Schedule(0, func(any) { order = append(order, "nested-zero-delay") }, nil)
	}, nil)
	q.Schedule(20, func(any) { order = append(order, "later") }, nil)

	q.DrainUntil(func() bool { return !q.Pending() })

	assert.Equal(t, []string{"first", "nested-zero-delay", "later"}, order)
}

func TestDrainUntilStopsWhenConditionMet(t *testing.T) {
	q := New()
	done := false
	calls := 0

	q.Schedule(10, func(any) { calls++; done = true }, nil)
	q.Schedule(20, func(any) { calls++ }, nil)

	q.DrainUntil(func() bool { return done })

	assert.Equal(t, 1, calls)
	assert.True(t, q.Pending())
}

func TestClockMonotonic(t *testing.T) {
	q := New()
	q.Schedule(5, func(any) {}, nil)
	q.ProcessNext()
	assert.Equal(t, uint64(5), q.Now())

	q.Schedule(3, func(any) {}, nil)
	q.ProcessNext()
	assert.Equal(t, uint64(8), q.Now())
}
