// Package workflow composes content publishing and registry calls into the
// register and publish workflows.
//
// Every workflow runs its steps strictly in order. The first failing step's
// error is returned unchanged and later steps never run. Nothing is rolled
// back: a name registered on-chain stays registered if the following publish
// fails, and callers must inspect chain state to learn which steps committed.
package workflow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ruteri/swarm-package-registry/interfaces"
)

// Workflow runs registry workflows against one publisher and one registry.
type Workflow struct {
	publisher interfaces.ContentPublisher
	registry  interfaces.PackageRegistry
	log       *slog.Logger
}

// New creates a workflow. A nil logger discards log output.
func New(publisher interfaces.ContentPublisher, registry interfaces.PackageRegistry, log *slog.Logger) (*Workflow, error) {
	if publisher == nil {
		return nil, errors.New("content publisher is required")
	}
	if registry == nil {
		return nil, errors.New("package registry is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Workflow{
		publisher: publisher,
		registry:  registry,
		log:       log,
	}, nil
}

// RegisterPackage uploads the directory at path, registers name and publishes
// the upload as version 0.1.0.
func (w *Workflow) RegisterPackage(ctx context.Context, path string, name interfaces.PackageName) (*interfaces.Release, error) {
	log := w.log.With(slog.String("package", name.String()))

	address, err := w.publisher.PublishDirectory(ctx, path)
	if err != nil {
		log.Error("Failed to publish package contents", slog.String("path", path), "err", err)
		return nil, err
	}
	log.Info("Published package contents", slog.String("address", address.String()))

	handle, err := w.registry.Register(ctx, name)
	if err != nil {
		log.Error("Failed to register package", "err", err)
		return nil, err
	}
	log.Info("Registered package", slog.String("handle", handle.String()))

	if err := w.registry.Publish(ctx, handle, interfaces.InitialVersion, address); err != nil {
		log.Error("Failed to publish initial version, package stays registered",
			slog.String("handle", handle.String()),
			"err", err)
		return nil, err
	}
	log.Info("Published version", slog.String("version", interfaces.InitialVersion.String()))

	return &interfaces.Release{
		Name:    name,
		Handle:  handle,
		Version: interfaces.InitialVersion,
		Address: address,
	}, nil
}

// PublishVersion resolves name and publishes version pointing at address, a
// content address obtained from an earlier upload.
func (w *Workflow) PublishVersion(ctx context.Context, name interfaces.PackageName, version interfaces.Version, address interfaces.ContentAddress) (*interfaces.Release, error) {
	handle, err := w.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	return w.publish(ctx, name, handle, version, address)
}

// ReleaseDirectory resolves name, uploads the directory at path and publishes
// version pointing at the fresh upload.
func (w *Workflow) ReleaseDirectory(ctx context.Context, name interfaces.PackageName, path string, version interfaces.Version) (*interfaces.Release, error) {
	handle, err := w.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	address, err := w.publisher.PublishDirectory(ctx, path)
	if err != nil {
		w.log.Error("Failed to publish package contents",
			slog.String("package", name.String()),
			slog.String("path", path),
			"err", err)
		return nil, err
	}

	return w.publish(ctx, name, handle, version, address)
}

func (w *Workflow) resolve(ctx context.Context, name interfaces.PackageName) (interfaces.PackageHandle, error) {
	handle, err := w.registry.Resolve(ctx, name)
	if err != nil {
		w.log.Error("Failed to resolve package", slog.String("package", name.String()), "err", err)
		return interfaces.PackageHandle{}, err
	}

	// The contract decides what an unknown name resolves to; a zero handle is passed on as-is.
	if handle.IsZero() {
		w.log.Warn("Package resolved to an empty handle", slog.String("package", name.String()))
	}
	return handle, nil
}

func (w *Workflow) publish(ctx context.Context, name interfaces.PackageName, handle interfaces.PackageHandle, version interfaces.Version, address interfaces.ContentAddress) (*interfaces.Release, error) {
	log := w.log.With(
		slog.String("package", name.String()),
		slog.String("handle", handle.String()),
		slog.String("version", version.String()))

	if err := w.registry.Publish(ctx, handle, version, address); err != nil {
		log.Error("Failed to publish version", "err", err)
		return nil, err
	}
	log.Info("Published version", slog.String("address", address.String()))

	return &interfaces.Release{
		Name:    name,
		Handle:  handle,
		Version: version,
		Address: address,
	}, nil
}
