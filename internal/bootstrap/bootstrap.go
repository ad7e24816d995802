package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "tsundoku/internal/modules/catalog/adapter/in"
	catalogoutadapter "tsundoku/internal/modules/catalog/adapter/out"
	catalogservice "tsundoku/internal/modules/catalog/service"
	catalogusecase "tsundoku/internal/modules/catalog/usecase"
	goalinadapter "tsundoku/internal/modules/goal/adapter/in"
	goaloutadapter "tsundoku/internal/modules/goal/adapter/out"
	goalservice "tsundoku/internal/modules/goal/service"
	goalusecase "tsundoku/internal/modules/goal/usecase"
	syncinadapter "tsundoku/internal/modules/sync/adapter/in"
	syncoutadapter "tsundoku/internal/modules/sync/adapter/out"
	syncservice "tsundoku/internal/modules/sync/service"
	syncusecase "tsundoku/internal/modules/sync/usecase"
	"tsundoku/internal/platform/clock"
	"tsundoku/internal/platform/config"
	"tsundoku/internal/platform/id"
	"tsundoku/internal/platform/storage"
	statusview "tsundoku/internal/ui/views/status"
)

type App struct {
	CatalogCLI cataloginadapter.CLIHandler
	GoalCLI    goalinadapter.CLIHandler
	SyncCLI    syncinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	datasets := storage.NewDatasetStore(cfg.DataPath)

	volumeStore := catalogoutadapter.NewVaultVolumeStore(cfg.VaultPath)
	volumeProjector, err := catalogoutadapter.NewSQLiteVolumeProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new volume projector: %w", err)
	}
	catalogSvc := catalogservice.NewVolumeService(clk, ids, volumeStore, volumeProjector, catalogoutadapter.NewPDFPageCounter())
	catalogUC := catalogusecase.NewInteractor(catalogSvc)

	dataStore := goaloutadapter.NewFileGoalsDataStore(datasets, clk)
	settingsStore := goaloutadapter.NewFileSettingsStore(datasets)
	snapshotStore := goaloutadapter.NewFileSnapshotStore(datasets)
	marker := goaloutadapter.NewFileCompletionMarker(datasets)
	progressLog := goaloutadapter.NewCatalogProgressLog(catalogUC)

	goalUC := goalusecase.NewInteractor(
		clk,
		goalservice.NewGoalService(clk, ids, dataStore, settingsStore),
		goalservice.NewLedgerService(clk, progressLog, marker),
		goalservice.NewSnapshotService(clk, snapshotStore),
		goalservice.NewProgressService(clk),
		dataStore,
		settingsStore,
		snapshotStore,
		marker,
		progressLog,
	)

	syncUC := syncusecase.NewInteractor(
		syncservice.NewSyncService(goalUC),
		syncoutadapter.NewFilePayloadStore(),
	)

	return &App{
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		GoalCLI:    goalinadapter.NewCLIHandler(goalUC),
		SyncCLI:    syncinadapter.NewCLIHandler(syncUC),
	}, nil
}

func RunTUI(app *App) error {
	model := statusview.New(app.GoalCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
