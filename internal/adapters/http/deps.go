package http

import (
	"github.com/nats-io/nats.go"

	"github.com/aeroanalytics/aerowatch/internal/adapters/postgres"
	"github.com/aeroanalytics/aerowatch/internal/adapters/valkey"
	"github.com/aeroanalytics/aerowatch/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Users      *usecases.UserService
	AirQuality *usecases.AirQualityService
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache
}
