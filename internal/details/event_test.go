package details

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConsumeOnce(t *testing.T) {
	var e Event[int]
	e.Emit(7)

	v, ok := e.Consume()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = e.Consume()
	assert.False(t, ok)
}

func TestEventConsumeWithoutEmit(t *testing.T) {
	var e Event[bool]
	_, ok := e.Consume()
	assert.False(t, ok)
}

func TestEventOverlappingEmitsLastWriteWins(t *testing.T) {
	var e Event[int]
	e.Emit(1)
	e.Emit(2)

	v, ok := e.Consume()
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = e.Consume()
	assert.False(t, ok)
}

func TestEventReEmitAfterConsume(t *testing.T) {
	var e Event[string]
	e.Emit("first")
	e.Consume()

	e.Emit("second")
	v, ok := e.Consume()
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}
