package router

import (
	"context"

	"github.com/oksasatya/account-registration/internal/application"
	"github.com/oksasatya/account-registration/internal/container"
	handlers "github.com/oksasatya/account-registration/internal/interface/http"
	"github.com/oksasatya/account-registration/internal/router/modules"
)

type RegistrationModuleDeps struct {
	Service *application.RegistrationService
	Handler *handlers.RegistrationHandler
}

func buildRegistrationDeps(ctx context.Context, c *container.Container) RegistrationModuleDeps {
	service := c.RegistrationService(ctx)
	handler := handlers.NewRegistrationHandler(service, c.Logger)

	return RegistrationModuleDeps{
		Service: service,
		Handler: handler,
	}
}

// InitModules builds every feature module from c and adds it to r.
// Call once during startup, before RegisterAll.
func InitModules(ctx context.Context, r *Registry, c *container.Container) {
	regDeps := buildRegistrationDeps(ctx, c)
	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(regDeps.Handler))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
