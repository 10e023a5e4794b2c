package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeKeepsCurrentWhenAbsent(t *testing.T) {
	assert.Equal(t, "kept", mergeString(nil, "kept"))
	assert.Equal(t, 9.5, mergeFloat(nil, 9.5))
	assert.Equal(t, int64(4), mergeInt64(nil, 4))
	assert.True(t, mergeBool(nil, true))

	current := int64(2)
	assert.Equal(t, &current, mergeInt64Ref(nil, &current))
	assert.Nil(t, mergeInt64Ref(nil, nil))
}

func TestMergeOverwritesWhenPresent(t *testing.T) {
	name := "new"
	price := 12.0
	clientID := int64(8)
	active := false

	assert.Equal(t, "new", mergeString(&name, "old"))
	assert.Equal(t, 12.0, mergeFloat(&price, 9.5))
	assert.Equal(t, int64(8), mergeInt64(&clientID, 4))
	assert.False(t, mergeBool(&active, true))

	current := int64(2)
	assert.Equal(t, &clientID, mergeInt64Ref(&clientID, &current))
}

// An explicit zero value is still a value: it overwrites.
func TestMergeExplicitZeroOverwrites(t *testing.T) {
	empty := ""
	zero := 0.0

	assert.Equal(t, "", mergeString(&empty, "old"))
	assert.Equal(t, 0.0, mergeFloat(&zero, 9.5))
}
