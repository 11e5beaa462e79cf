package registry

import (
	"context"
	"testing"

	"github.com/ruteri/swarm-package-registry/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMemoryRegistry_ReadOnlyByDefault(t *testing.T) {
	reg := NewMemoryRegistry()
	_, err := reg.Register(context.Background(), "registry_example")
	assert.ErrorIs(t, err, ErrNoTransactOpts)
}

func TestMemoryRegistry_PublishRoundTrip(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.SetTransactOpts()
	ctx := context.Background()

	handle, err := reg.Register(ctx, "registry_example")
	require.NoError(t, err)

	_, found := reg.Latest(handle)
	assert.False(t, found)

	require.NoError(t, reg.Publish(ctx, handle, interfaces.InitialVersion, "addr-1"))
	latest, found := reg.Latest(handle)
	require.True(t, found)
	assert.Equal(t, interfaces.InitialVersion, latest.Version)
	assert.Equal(t, interfaces.ContentAddress("addr-1"), latest.Address)
	assert.Equal(t, interfaces.PackageName("registry_example"), latest.Name)

	// versions are not required to increase
	require.NoError(t, reg.Publish(ctx, handle, interfaces.Version{}, "addr-0"))
	latest, _ = reg.Latest(handle)
	assert.Equal(t, interfaces.Version{}, latest.Version)
	assert.Len(t, reg.Releases(handle), 2)
}

func TestMemoryRegistry_Rejections(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.SetTransactOpts()
	ctx := context.Background()

	_, err := reg.Register(ctx, "registry_example")
	require.NoError(t, err)

	_, err = reg.Register(ctx, "registry_example")
	assert.ErrorIs(t, err, interfaces.ErrTransaction)

	err = reg.Publish(ctx, interfaces.PackageHandle{0x42}, interfaces.InitialVersion, "addr")
	assert.ErrorIs(t, err, interfaces.ErrTransaction)
}

func TestMemoryRegistry_RegisterResolveProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewMemoryRegistry()
		reg.SetTransactOpts()
		ctx := context.Background()

		names := rapid.SliceOfDistinct(rapid.StringN(1, 32, -1), func(s string) string { return s }).Draw(t, "names")
		handles := make(map[interfaces.PackageName]interfaces.PackageHandle)
		for _, n := range names {
			name := interfaces.PackageName(n)
			handle, err := reg.Register(ctx, name)
			if err != nil {
				t.Fatalf("register %q: %v", name, err)
			}
			if handle.IsZero() {
				t.Fatalf("zero handle for %q", name)
			}
			handles[name] = handle
		}

		for name, handle := range handles {
			for i := 0; i < 2; i++ {
				resolved, err := reg.Resolve(ctx, name)
				if err != nil {
					t.Fatalf("resolve %q: %v", name, err)
				}
				if resolved != handle {
					t.Fatalf("resolve %q returned %s, registered %s", name, resolved, handle)
				}
			}
		}

		unknown := rapid.StringN(33, 40, -1).Draw(t, "unknown")
		resolved, err := reg.Resolve(ctx, interfaces.PackageName(unknown))
		if err != nil || !resolved.IsZero() {
			t.Fatalf("unknown name %q resolved to %s, %v", unknown, resolved, err)
		}
	})
}
