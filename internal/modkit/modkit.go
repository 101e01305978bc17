// Package modkit wires service modules onto the router
package modkit

import (
	phttp "reviewlens/internal/platform/net/http"
)

// Module is what every service module exposes to the composition root
type Module interface {
	// MountRoutes attaches the module's pages and endpoints
	MountRoutes(r phttp.Router)

	// Ports returns the module's port set for cross wiring, nil when it has none
	Ports() any

	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// APIModule is a Module that also serves JSON under the versioned API prefix
type APIModule interface {
	Module
	MountAPI(r phttp.Router)
}
