package cmd

import (
	"log"

	"trading-journal/internal/repository"
	"trading-journal/internal/service"
	"trading-journal/pkg/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default symbol catalog",
	Run: func(cmd *cobra.Command, args []string) {
		appDep, err := NewAppDependency()
		if err != nil {
			log.Fatalf("Failed to create app dependency: %v", err)
		}
		defer appDep.Close()

		repo := repository.NewRepository(appDep.db.DB)
		symbols := service.NewSymbolService(appDep.log, repo.SymbolRepo)
		added, err := symbols.Seed(cmd.Context())
		if err != nil {
			appDep.log.Error("Seeding failed", logger.ErrorField(err))
			return
		}
		appDep.log.Info("Seeding finished", logger.IntField("added", int(added)))
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a performance snapshot for every account now",
	Run: func(cmd *cobra.Command, args []string) {
		appDep, err := NewAppDependency()
		if err != nil {
			log.Fatalf("Failed to create app dependency: %v", err)
		}
		defer appDep.Close()

		services := service.NewService(appDep.cfg, appDep.log, repository.NewRepository(appDep.db.DB), appDep.cache)
		if err := services.SchedulerService.RunSnapshotJob(cmd.Context()); err != nil {
			appDep.log.Error("Snapshot failed", logger.ErrorField(err))
		}
	},
}
