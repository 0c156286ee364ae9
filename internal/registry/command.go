package registry

import (
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/cln/internal/settings"
	"github.com/temirov/cln/internal/ui"
)

const storeProviderMissingMessageConstant = "registry store provider not configured"

// ErrStoreProviderNotConfigured indicates a builder without a way to open the settings store.
var ErrStoreProviderNotConfigured = errors.New(storeProviderMissingMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// StoreProvider opens the settings store selected by configuration and flags.
type StoreProvider func() (*settings.Store, error)

// RenderOptionsProvider supplies terminal styling options.
type RenderOptionsProvider func() ui.RenderOptions

func resolveLogger(provider LoggerProvider) *zap.Logger {
	var logger *zap.Logger
	if provider != nil {
		logger = provider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func resolveRenderOptions(provider RenderOptionsProvider) ui.RenderOptions {
	if provider == nil {
		return ui.RenderOptions{}
	}
	return provider()
}

func openStore(provider StoreProvider) (*settings.Store, error) {
	if provider == nil {
		return nil, ErrStoreProviderNotConfigured
	}
	return provider()
}
