package param

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeFetcher struct {
	values map[string]string
	paths  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	v, ok := f.values[path]
	if !ok {
		return "", errors.New("ParameterNotFound")
	}
	return v, nil
}

func TestResolveKeyPrefersDirect(t *testing.T) {
	f := &fakeFetcher{values: map[string]string{"/wastebot/key": "stored"}}
	assert.Equal(t, "direct", ResolveKey(context.Background(), f, "direct", "/wastebot/key"))
	assert.Empty(t, f.paths)
}

func TestResolveKeyFromParameterStore(t *testing.T) {
	f := &fakeFetcher{values: map[string]string{"/wastebot/key": "stored"}}
	assert.Equal(t, "stored", ResolveKey(context.Background(), f, "", "/wastebot/key"))
	assert.Equal(t, []string{"/wastebot/key"}, f.paths)
}

func TestResolveKeyMissing(t *testing.T) {
	f := &fakeFetcher{}
	assert.Empty(t, ResolveKey(context.Background(), f, "", ""))
	assert.Empty(t, f.paths)

	assert.Empty(t, ResolveKey(context.Background(), f, "", "/wastebot/missing"))
	assert.Equal(t, []string{"/wastebot/missing"}, f.paths)
}
