package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/config"
	"github.com/sara-relief/relief-service/internal/persistence"
)

// AppContext holds what every command needs once the root pre-run finished.
type AppContext struct {
	Ctx      context.Context
	Cfg      *config.Config
	Logger   *zap.Logger
	Postgres *persistence.Postgres
}
