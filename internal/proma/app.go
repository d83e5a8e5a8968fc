package proma

import (
	"github.com/colonyops/proma/internal/core/clock"
	"github.com/colonyops/proma/internal/core/config"
	"github.com/colonyops/proma/internal/data/db"
	"github.com/colonyops/proma/internal/data/stores"
	"github.com/rs/zerolog"
)

// App is the central entry point for all proma operations.
// Commands and MCP tools consume App instead of cherry-picking raw dependencies.
type App struct {
	WorkItems *WorkItemService
	Members   *MemberService

	Clock  clock.Clock
	Config *config.Config
	DB     *db.DB
}

// NewApp wires the SQLite-backed stores into the services.
func NewApp(cfg *config.Config, database *db.DB, clk clock.Clock, log zerolog.Logger) *App {
	memberStore := stores.NewMemberStore(database)

	workItems := NewWorkItemService(stores.NewItemStore(database), memberStore, clk, log)
	workItems.SetRecentLimit(cfg.Report.RecentLimit)

	return &App{
		WorkItems: workItems,
		Members:   NewMemberService(memberStore, clk, log),
		Clock:     clk,
		Config:    cfg,
		DB:        database,
	}
}
