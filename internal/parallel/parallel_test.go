package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 4

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(10, func(i int) {
		order = append(order, i)
	}, Sequential())

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestFor_SmallN(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}

	var counter int64
	For(10, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(10), counter)
}

func TestFor_ZeroConfig(t *testing.T) {
	var counter int64
	For(5, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, Config{})

	assert.Equal(t, int64(5), counter)
}

func TestForGrid(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	rows, cols := 4, 8
	results := make([][]bool, rows)
	for r := range results {
		results[r] = make([]bool, cols)
	}

	ForGrid(rows, cols, func(r, c int) {
		results[r][c] = true
	}, cfg)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			assert.True(t, results[r][c], "missing result at [%d][%d]", r, c)
		}
	}
}

func TestForGrid_Empty(t *testing.T) {
	called := false
	ForGrid(3, 0, func(_, _ int) { called = true }, DefaultConfig())
	assert.False(t, called)
}

func TestMap(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2}

	squares := Map(20, func(i int) int { return i * i }, cfg)

	assert.Len(t, squares, 20)
	for i, s := range squares {
		assert.Equal(t, i*i, s)
	}
}
