package workflow

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruteri/swarm-package-registry/gateway"
	"github.com/ruteri/swarm-package-registry/interfaces"
	"github.com/ruteri/swarm-package-registry/registry"
	"github.com/ruteri/swarm-package-registry/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupPackageDir creates ./pkg containing a single file a.txt.
func setupPackageDir(t *testing.T) string {
	dir := filepath.Join(t.TempDir(), "pkg")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello registry"), 0o644))
	return dir
}

func setupGateway(t *testing.T) (*gateway.Server, string) {
	srv, err := gateway.New(&gateway.HTTPServerConfig{Log: discardLogger()})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts.URL + "/bzz:/"
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// rejectingPublish is a registry whose publish transactions are always rejected.
type rejectingPublish struct {
	*registry.MemoryRegistry
}

func (r rejectingPublish) Publish(ctx context.Context, handle interfaces.PackageHandle, version interfaces.Version, address interfaces.ContentAddress) error {
	return interfaces.ErrTransaction
}

func TestWorkflow_RegisterThenPublish(t *testing.T) {
	gw, gatewayURL := setupGateway(t)
	reg := registry.NewMemoryRegistry()
	reg.SetTransactOpts()

	wf, err := New(storage.NewSwarmPublisher(gatewayURL, 5*time.Second, discardLogger()), reg, nil)
	require.NoError(t, err)
	ctx := context.Background()
	dir := setupPackageDir(t)

	// Scenario A
	release, err := wf.RegisterPackage(ctx, dir, "example")
	require.NoError(t, err)
	assert.NotEmpty(t, release.Address)
	assert.False(t, release.Handle.IsZero())
	assert.Equal(t, interfaces.InitialVersion, release.Version)

	_, stored := gw.Store().Get(release.Address.String())
	assert.True(t, stored)

	latest, found := reg.Latest(release.Handle)
	require.True(t, found)
	assert.Equal(t, interfaces.InitialVersion, latest.Version)
	assert.Equal(t, release.Address, latest.Address)

	// Scenario B
	v123 := interfaces.Version{Major: 1, Minor: 2, Build: 3}
	next, err := wf.PublishVersion(ctx, "example", v123, release.Address)
	require.NoError(t, err)
	assert.Equal(t, release.Handle, next.Handle)

	latest, _ = reg.Latest(release.Handle)
	assert.Equal(t, v123, latest.Version)
	assert.Equal(t, release.Address, latest.Address)

	// fresh upload for another version
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("more"), 0o644))
	v124 := interfaces.Version{Major: 1, Minor: 2, Build: 4}
	fresh, err := wf.ReleaseDirectory(ctx, "example", dir, v124)
	require.NoError(t, err)
	assert.Equal(t, release.Handle, fresh.Handle)
	assert.NotEqual(t, release.Address, fresh.Address)

	releases := reg.Releases(release.Handle)
	require.Len(t, releases, 3)
	assert.Equal(t, v124, releases[2].Version)
	assert.Equal(t, 2, gw.Store().Len())
}

func TestWorkflow_UploadUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	unreachable := ts.URL + "/bzz:/"
	ts.Close()

	reg := &registry.MockRegistry{}
	wf, err := New(storage.NewSwarmPublisher(unreachable, time.Second, discardLogger()), reg, discardLogger())
	require.NoError(t, err)

	// Scenario C
	_, err = wf.RegisterPackage(context.Background(), setupPackageDir(t), "example")
	assert.ErrorIs(t, err, interfaces.ErrUpload)
	reg.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	reg.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_PublishRejectedAfterRegister(t *testing.T) {
	_, gatewayURL := setupGateway(t)
	mem := registry.NewMemoryRegistry()
	mem.SetTransactOpts()

	wf, err := New(storage.NewSwarmPublisher(gatewayURL, 5*time.Second, discardLogger()), rejectingPublish{mem}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	// Scenario D
	release, err := wf.RegisterPackage(ctx, setupPackageDir(t), "example")
	assert.ErrorIs(t, err, interfaces.ErrTransaction)
	assert.Nil(t, release)

	// the registration is not rolled back
	handle, err := mem.Resolve(ctx, "example")
	require.NoError(t, err)
	assert.Equal(t, registry.ComputeHandle("example"), handle)
	assert.Empty(t, mem.Releases(handle))
}

func TestWorkflow_StepOrderAndErrorPropagation(t *testing.T) {
	ctx := context.Background()
	handle := interfaces.PackageHandle{0x01}
	address := interfaces.ContentAddress("c0ffee")

	t.Run("register failure skips publish", func(t *testing.T) {
		publisher := &storage.MockPublisher{}
		reg := &registry.MockRegistry{}
		publisher.On("PublishDirectory", ctx, "./pkg").Return(address, nil).Once()
		reg.On("Register", ctx, interfaces.PackageName("example")).Return(interfaces.PackageHandle{}, interfaces.ErrTransaction).Once()

		wf, err := New(publisher, reg, nil)
		require.NoError(t, err)

		_, err = wf.RegisterPackage(ctx, "./pkg", "example")
		assert.ErrorIs(t, err, interfaces.ErrTransaction)
		publisher.AssertExpectations(t)
		reg.AssertExpectations(t)
		reg.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("register publishes initial version", func(t *testing.T) {
		publisher := &storage.MockPublisher{}
		reg := &registry.MockRegistry{}
		publisher.On("PublishDirectory", ctx, "./pkg").Return(address, nil).Once()
		reg.On("Register", ctx, interfaces.PackageName("example")).Return(handle, nil).Once()
		reg.On("Publish", ctx, handle, interfaces.Version{Major: 0, Minor: 1, Build: 0}, address).Return(nil).Once()

		wf, err := New(publisher, reg, nil)
		require.NoError(t, err)

		release, err := wf.RegisterPackage(ctx, "./pkg", "example")
		require.NoError(t, err)
		assert.Equal(t, &interfaces.Release{Name: "example", Handle: handle, Version: interfaces.InitialVersion, Address: address}, release)
		publisher.AssertExpectations(t)
		reg.AssertExpectations(t)
	})

	t.Run("resolve failure skips upload", func(t *testing.T) {
		publisher := &storage.MockPublisher{}
		reg := &registry.MockRegistry{}
		reg.On("Resolve", ctx, interfaces.PackageName("example")).Return(interfaces.PackageHandle{}, interfaces.ErrNotFound).Once()

		wf, err := New(publisher, reg, nil)
		require.NoError(t, err)

		_, err = wf.ReleaseDirectory(ctx, "example", "./pkg", interfaces.Version{Major: 1})
		assert.ErrorIs(t, err, interfaces.ErrNotFound)
		publisher.AssertNotCalled(t, "PublishDirectory", mock.Anything, mock.Anything)
		reg.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero handle is passed through", func(t *testing.T) {
		publisher := &storage.MockPublisher{}
		reg := &registry.MockRegistry{}
		v := interfaces.Version{Major: 2}
		reg.On("Resolve", ctx, interfaces.PackageName("unknown")).Return(interfaces.PackageHandle{}, nil).Once()
		reg.On("Publish", ctx, interfaces.PackageHandle{}, v, address).Return(interfaces.ErrTransaction).Once()

		wf, err := New(publisher, reg, nil)
		require.NoError(t, err)

		_, err = wf.PublishVersion(ctx, "unknown", v, address)
		assert.ErrorIs(t, err, interfaces.ErrTransaction)
		reg.AssertExpectations(t)
	})
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, registry.NewMemoryRegistry(), nil)
	assert.Error(t, err)

	_, err = New(&storage.MockPublisher{}, nil, nil)
	assert.Error(t, err)
}
