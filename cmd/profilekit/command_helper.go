package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/reglet-dev/profilekit/internal/application/dto"
	"github.com/reglet-dev/profilekit/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

// CommandContext provides common command dependencies.
// Eliminates repetitive container initialization across CLI commands.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
	RequestID string
}

// Metadata returns request metadata for use case requests.
func (c *CommandContext) Metadata() dto.RequestMetadata {
	return dto.RequestMetadata{RequestID: c.RequestID}
}

// CommandHandler is a function that executes with initialized dependencies.
// Commands focus on business logic, not infrastructure setup.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// Handles common setup: config loading, logger creation, dependency injection.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "minimize",
//	    RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        resp, err := ctx.Container.MinimizeUseCase().Execute(ctx.Context, req)
//	        ...
//	    }),
//	}
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		requestID := uuid.NewString()
		logger := slog.Default().With("request_id", requestID)

		// Initialize container with dependencies
		c, err := container.New(container.Options{
			SystemConfigPath: configPath(),
			Logger:           slog.Default(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := &CommandContext{
			Container: c,
			Logger:    logger,
			Context:   cmd.Context(),
			RequestID: requestID,
		}

		return handler(ctx, cmd, args)
	}
}
