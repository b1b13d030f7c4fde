package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)
	assert.Equal(t, []int{}, Map(nil, func(v int) int { return v }))
}

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"village", "district"}, "village"))
	assert.False(t, Contains([]string{"village", "district"}, "taluka"))
	assert.False(t, Contains(nil, "village"))
}

func TestUniques(t *testing.T) {
	unique := Uniques([]int{3, 1, 3, 2, 1})
	sort.Ints(unique)
	assert.Equal(t, []int{1, 2, 3}, unique)
}
