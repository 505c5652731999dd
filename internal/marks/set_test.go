package marks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIsInvolution(t *testing.T) {
	s := New()

	assert.True(t, s.Toggle("/a/x.txt"))
	assert.True(t, s.Contains("/a/x.txt"))
	assert.Equal(t, 1, s.Len())

	assert.False(t, s.Toggle("/a/x.txt"))
	assert.False(t, s.Contains("/a/x.txt"))
	assert.Equal(t, 0, s.Len())
}

func TestPathsSorted(t *testing.T) {
	s := New()
	s.Toggle("/b/2.txt")
	s.Toggle("/a/1.txt")
	s.Toggle("/c/3.txt")

	assert.Equal(t, []string{"/a/1.txt", "/b/2.txt", "/c/3.txt"}, s.Paths())
}

func TestGeneration(t *testing.T) {
	s := New()
	g0 := s.Generation()

	s.Toggle("/a")
	g1 := s.Generation()
	assert.Greater(t, g1, g0)

	paths, gen := s.Snapshot()
	assert.Equal(t, []string{"/a"}, paths)
	assert.Equal(t, g1, gen)

	s.Clear()
	assert.Greater(t, s.Generation(), g1)
	assert.Empty(t, s.Paths())

	g2 := s.Generation()
	s.Clear()
	assert.Equal(t, g2, s.Generation(), "clearing an empty set changes nothing")
}

func TestConcurrentToggle(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := fmt.Sprintf("/f/%02d", i)
			s.Toggle(p)
			_ = s.Contains(p)
			_ = s.Paths()
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, s.Len())
	assert.Equal(t, uint64(50), s.Generation())
}
