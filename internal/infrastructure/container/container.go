// Package container provides dependency injection for the application.
package container

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/reglet-dev/profilekit/internal/application/services"
	"github.com/reglet-dev/profilekit/internal/infrastructure/adapters"
	"github.com/reglet-dev/profilekit/internal/infrastructure/output"
	"github.com/reglet-dev/profilekit/internal/infrastructure/system"
	"github.com/reglet-dev/profilekit/internal/infrastructure/validation"
)

// Container holds all application dependencies.
type Container struct {
	formatterFactory ports.OutputFormatterFactory
	concretize       *services.ConcretizeProfileUseCase
	minimize         *services.MinimizeProfileUseCase
	rebase           *services.RebaseProfileUseCase
	systemCfg        *system.Config
	logger           *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	// Load system config
	systemConfigAdapter := adapters.NewSystemConfigAdapter()
	systemCfg, err := systemConfigAdapter.LoadConfig(context.TODO(), opts.SystemConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.SystemConfigPath != "" {
		opts.Logger.Debug("system config loaded", "path", opts.SystemConfigPath)
	}

	// Profile schema is embedded; failing to compile it is a build defect
	validator, err := validation.NewDocumentValidator()
	if err != nil {
		return nil, err
	}

	storage := adapters.NewFileProfileStorage(validator)

	return &Container{
		formatterFactory: output.NewFormatterFactory(),
		concretize:       services.NewConcretizeProfileUseCase(storage, opts.Logger),
		minimize:         services.NewMinimizeProfileUseCase(storage, systemCfg.AlwaysKeep, opts.Logger),
		rebase:           services.NewRebaseProfileUseCase(storage, systemCfg.AlwaysKeep, opts.Logger),
		systemCfg:        systemCfg,
		logger:           opts.Logger,
	}, nil
}

// ConcretizeUseCase returns the concretize use case.
func (c *Container) ConcretizeUseCase() *services.ConcretizeProfileUseCase {
	return c.concretize
}

// MinimizeUseCase returns the minimize use case.
func (c *Container) MinimizeUseCase() *services.MinimizeProfileUseCase {
	return c.minimize
}

// RebaseUseCase returns the rebase use case.
func (c *Container) RebaseUseCase() *services.RebaseProfileUseCase {
	return c.rebase
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
