package quicklog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(msg string) Record {
	return Record{Level: LevelInfo, Message: msg}
}

func TestDualBufferPushAndOverflow(t *testing.T) {
	b := newDualBuffer(3)

	for i := 0; i < 5; i++ {
		b.push(rec(fmt.Sprint(i)))
	}

	assert.Equal(t, uint64(2), b.overflowCount())
	assert.Equal(t, 3, b.pending())

	records := b.take(primaryBuffer)
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, fmt.Sprint(i), r.Message, "FIFO order")
	}

	assert.Equal(t, uint64(2), b.takeOverflow())
	assert.Equal(t, uint64(0), b.overflowCount())
	assert.Equal(t, uint64(2), b.totalDropped(), "lifetime total survives reset")
}

func TestDualBufferActiveSelector(t *testing.T) {
	b := newDualBuffer(10)

	b.push(rec("a"))
	b.setActive(secondaryBuffer)
	b.push(rec("b"))
	b.push(rec("c"))

	primary := b.take(primaryBuffer)
	secondary := b.take(secondaryBuffer)

	require.Len(t, primary, 1)
	require.Len(t, secondary, 2)
	assert.Equal(t, "a", primary[0].Message)
	assert.Equal(t, "b", secondary[0].Message)
	assert.Nil(t, b.take(primaryBuffer), "empty queue yields nil")
}

func TestDualBufferPerQueueCapacity(t *testing.T) {
	b := newDualBuffer(2)

	b.push(rec("1"))
	b.push(rec("2"))
	b.setActive(secondaryBuffer)
	assert.True(t, b.push(rec("3")), "secondary has its own capacity")
	assert.True(t, b.push(rec("4")))
	assert.False(t, b.push(rec("5")))

	assert.Equal(t, uint64(1), b.overflowCount())
}

func TestDualBufferRecycle(t *testing.T) {
	b := newDualBuffer(4)
	b.push(rec("x"))

	records := b.take(primaryBuffer)
	require.Len(t, records, 1)
	b.recycle(primaryBuffer, records)
	assert.Empty(t, records[0].Message, "recycled records are cleared")

	b.push(rec("y"))
	next := b.take(primaryBuffer)
	require.Len(t, next, 1)
	assert.Equal(t, "y", next[0].Message)
}

func TestDualBufferSetCapacity(t *testing.T) {
	b := newDualBuffer(1)
	b.push(rec("1"))
	assert.False(t, b.push(rec("2")))

	b.setCapacity(3)
	assert.Equal(t, 3, b.getCapacity())
	assert.True(t, b.push(rec("3")))

	b.setCapacity(1)
	assert.False(t, b.push(rec("4")), "queue over reduced bound rejects")
	assert.Len(t, b.take(primaryBuffer), 2, "records above reduced bound are kept")
}

func TestDualBufferConcurrentPush(t *testing.T) {
	const producers, perProducer = 8, 500
	b := newDualBuffer(producers * perProducer)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.push(rec("m"))
			}
		}()
	}

	// Swap concurrently with producers
	var drained int
	for i := 0; i < 50; i++ {
		b.setActive(i % 2)
		drained += len(b.take((i + 1) % 2))
	}
	wg.Wait()
	drained += len(b.take(primaryBuffer)) + len(b.take(secondaryBuffer))

	assert.Equal(t, producers*perProducer, drained)
	assert.Equal(t, uint64(0), b.overflowCount())
}

func TestDualBufferClose(t *testing.T) {
	b := newDualBuffer(4)
	require.True(t, b.push(Record{Message: "before"}))

	b.close()
	assert.False(t, b.push(Record{Message: "after"}))
	assert.Zero(t, b.overflowCount(), "closed rejections are not overflow")
	assert.Zero(t, b.totalDropped())

	records := b.take(primaryBuffer)
	require.Len(t, records, 1, "records accepted before close stay queued")
	assert.Equal(t, "before", records[0].Message)
	assert.Zero(t, b.pending())
}
