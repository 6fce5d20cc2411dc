package template

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentKey(t *testing.T) {
	a := ContentKey("Hello {{name}}")
	b := ContentKey("Hello {{name}}")
	c := ContentKey("Hello {{other}}")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "tmpl_"))
	assert.Len(t, a, len("tmpl_")+64)
}

func TestCache_Compile(t *testing.T) {
	cache := NewCache(nil)

	first := cache.Compile("Hi {{name}}")
	second := cache.Compile("Hi {{name}}")
	require.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	got, ok := cache.Get(ContentKey("Hi {{name}}"))
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, "Hi Ada", got.Render(map[string]any{"name": "Ada"}))

	cache.Compile("Bye {{name}}")
	assert.Equal(t, 2, cache.Len())
}

func TestCache_Named(t *testing.T) {
	cache := NewCache(NewEngine())

	simple := cache.Named("simple", "<h1>{{title}}</h1>")
	again := cache.Named("simple", "ignored until cleared")
	assert.Same(t, simple, again)
	assert.Equal(t, "<h1>Down</h1>", again.Render(map[string]any{"title": "Down"}))
	assert.Equal(t, []string{"simple"}, cache.Keys())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("simple")
	assert.False(t, ok)

	replaced := cache.Named("simple", "<h2>{{title}}</h2>")
	assert.NotSame(t, simple, replaced)
	assert.Equal(t, "<h2>Down</h2>", replaced.Render(map[string]any{"title": "Down"}))
}

func TestCache_Concurrent(t *testing.T) {
	cache := NewCache(nil)

	var wg sync.WaitGroup
	compiled := make([]*Compiled, 32)
	for i := range compiled {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			compiled[i] = cache.Compile("{{#if ok}}yes{{/if}}")
		}(i)
	}
	wg.Wait()

	for _, c := range compiled[1:] {
		assert.Same(t, compiled[0], c)
	}
	assert.Equal(t, 1, cache.Len())
}
