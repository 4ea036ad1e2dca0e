// Package logger owns the process-wide zap logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New builds a JSON production logger for production and a console logger everywhere else.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Init builds the logger for env and installs it as the process logger.
func Init(env string) (*zap.Logger, error) {
	l, err := New(env)
	if err != nil {
		return nil, err
	}
	Set(l)
	return l, nil
}

// Set replaces the process logger.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// L returns the process logger. It is a no-op logger until Init or Set is called.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Named returns the process logger tagged with a component field.
func Named(component string) *zap.Logger {
	return L().With(zap.String("component", component))
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}
