package router

import (
	"github.com/summitworks/eventreg/internal/application"
	"github.com/summitworks/eventreg/internal/container"
	pginfra "github.com/summitworks/eventreg/internal/infrastructure/postgres"
	handlers "github.com/summitworks/eventreg/internal/interface/http"
	"github.com/summitworks/eventreg/internal/router/modules"
)

// InitModules wires repositories, services, and handlers out of the
// container singletons and registers every feature module. Called once at
// startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	events := pginfra.NewEventRepository(pool)
	participants := pginfra.NewParticipantRepository(pool)

	authSvc := application.NewAuthService(users, container.GetGCS(), cfg.GCSBucket, logger)
	eventSvc := application.NewEventService(events)
	participantSvc := application.NewParticipantService(
		participants,
		events,
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESParticipantsIndex,
		logger,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(authSvc, logger)))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(eventSvc, participantSvc, logger)))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(pool)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
