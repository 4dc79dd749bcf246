package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTagSetNormalizesMessyInput(t *testing.T) {
	tags := NewTagSet("rock, pop ,,jazz")
	assert.Equal(t, []string{"rock", "pop", "jazz"}, tags.Values())
	assert.Equal(t, "rock,pop,jazz", tags.Serialize())
}

func TestTagSetAppendTrimsAndRejectsEmpty(t *testing.T) {
	tags := NewTagSet("")
	assert.Equal(t, 0, tags.Len())

	assert.True(t, tags.Append("  ambient "))
	assert.False(t, tags.Append("   "))
	assert.False(t, tags.Append(""))
	assert.Equal(t, []string{"ambient"}, tags.Values())
}

func TestTagSetAllowsDuplicates(t *testing.T) {
	tags := NewTagSet("rock")
	assert.True(t, tags.Append("rock"))
	assert.Equal(t, []string{"rock", "rock"}, tags.Values())
	assert.Equal(t, "rock,rock", tags.Serialize())
}

func TestTagSetRemoveAtTakesOneOccurrence(t *testing.T) {
	tags := NewTagSet("rock,pop,rock")
	tags.RemoveAt(0)
	assert.Equal(t, []string{"pop", "rock"}, tags.Values())

	tags.RemoveAt(5)
	tags.RemoveAt(-1)
	assert.Equal(t, []string{"pop", "rock"}, tags.Values())
}

func TestTagSetRemoveLast(t *testing.T) {
	tags := NewTagSet("a,b")
	tags.RemoveLast()
	assert.Equal(t, []string{"a"}, tags.Values())
	tags.RemoveLast()
	tags.RemoveLast()
	assert.Equal(t, 0, tags.Len())
}

func TestTagSetValuesIsACopy(t *testing.T) {
	tags := NewTagSet("a,b")
	vals := tags.Values()
	vals[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, tags.Values())
}
