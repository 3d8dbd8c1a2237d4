package bootstrap

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "modernc.org/sqlite"

	"focuslock/internal/api"
	attestinadapter "focuslock/internal/modules/attest/adapter/in"
	attestoutadapter "focuslock/internal/modules/attest/adapter/out"
	attestservice "focuslock/internal/modules/attest/service"
	attestusecase "focuslock/internal/modules/attest/usecase"
	commitmentinadapter "focuslock/internal/modules/commitment/adapter/in"
	commitmentoutadapter "focuslock/internal/modules/commitment/adapter/out"
	commitmentservice "focuslock/internal/modules/commitment/service"
	commitmentusecase "focuslock/internal/modules/commitment/usecase"
	profileinadapter "focuslock/internal/modules/profile/adapter/in"
	profileoutadapter "focuslock/internal/modules/profile/adapter/out"
	profileservice "focuslock/internal/modules/profile/service"
	profileusecase "focuslock/internal/modules/profile/usecase"
	registryinadapter "focuslock/internal/modules/registry/adapter/in"
	registryoutadapter "focuslock/internal/modules/registry/adapter/out"
	registryservice "focuslock/internal/modules/registry/service"
	registryusecase "focuslock/internal/modules/registry/usecase"
	sessioninadapter "focuslock/internal/modules/session/adapter/in"
	sessionoutadapter "focuslock/internal/modules/session/adapter/out"
	sessionservice "focuslock/internal/modules/session/service"
	sessionusecase "focuslock/internal/modules/session/usecase"
	treasuryinadapter "focuslock/internal/modules/treasury/adapter/in"
	treasuryoutadapter "focuslock/internal/modules/treasury/adapter/out"
	treasuryservice "focuslock/internal/modules/treasury/service"
	treasuryusecase "focuslock/internal/modules/treasury/usecase"
	"focuslock/internal/platform/clock"
	"focuslock/internal/platform/config"
	"focuslock/internal/platform/tx"
	uiapp "focuslock/internal/ui/app"
	"focuslock/internal/ui/views/dashboard"
)

type App struct {
	RegistryCLI   registryinadapter.CLIHandler
	ProfileCLI    profileinadapter.CLIHandler
	TreasuryCLI   treasuryinadapter.CLIHandler
	CommitmentCLI commitmentinadapter.CLIHandler
	SessionCLI    sessioninadapter.CLIHandler
	AttestCLI     attestinadapter.CLIHandler

	cfg config.Config
	db  *sql.DB
	api *api.API
	tui dashboard.Model
}

func New(cfg config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	clk := clock.SystemClock{}
	slots := clock.SystemSlotSource{}
	mgr := tx.NewSQLManager(db)

	registryStore, err := registryoutadapter.NewSQLiteRegistryStore(db)
	if err != nil {
		return nil, fmt.Errorf("new registry store: %w", err)
	}
	profileStore, err := profileoutadapter.NewSQLiteProfileStore(db)
	if err != nil {
		return nil, fmt.Errorf("new profile store: %w", err)
	}
	accountStore, err := treasuryoutadapter.NewSQLiteAccountStore(db)
	if err != nil {
		return nil, fmt.Errorf("new account store: %w", err)
	}
	commitmentStore, err := commitmentoutadapter.NewSQLiteCommitmentStore(db)
	if err != nil {
		return nil, fmt.Errorf("new commitment store: %w", err)
	}
	sessionStore, err := sessionoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}

	registryUC := registryusecase.NewInteractor(registryservice.NewRegistryService(clk, registryStore), registryStore, mgr)
	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(clk, profileStore), profileStore, registryUC, mgr)
	treasuryUC := treasuryusecase.NewInteractor(treasuryservice.NewTreasuryService(accountStore), accountStore, mgr)
	commitmentUC := commitmentusecase.NewInteractor(commitmentservice.NewCommitmentService(clk, commitmentStore), commitmentStore, treasuryUC, registryUC, profileUC, mgr)

	attestUC := attestusecase.NewInteractor(attestservice.NewAttestService(
		attestoutadapter.NewFileManifestStore(cfg.AttestorsPath),
		attestoutadapter.NewGRPCHost(),
	))

	sessionSvc := sessionservice.NewSessionService(clk, slots, sessionStore)
	sessionUC := sessionusecase.NewInteractor(sessionSvc, sessionStore, commitmentUC, profileUC, attestUC, mgr)

	logger := log.New(os.Stderr, "focuslock ", log.LstdFlags)

	return &App{
		RegistryCLI:   registryinadapter.NewCLIHandler(registryUC),
		ProfileCLI:    profileinadapter.NewCLIHandler(profileUC),
		TreasuryCLI:   treasuryinadapter.NewCLIHandler(treasuryUC),
		CommitmentCLI: commitmentinadapter.NewCLIHandler(commitmentUC),
		SessionCLI:    sessioninadapter.NewCLIHandler(sessionUC),
		AttestCLI:     attestinadapter.NewCLIHandler(attestUC),

		cfg: cfg,
		db:  db,
		api: api.New(registryUC, profileUC, treasuryUC, commitmentUC, sessionUC, attestUC, logger),
		tui: dashboard.New(registryUC, profileUC, commitmentUC, sessionUC, treasuryUC, cfg.Actor),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func RunTUI(app *App) error {
	program := tea.NewProgram(uiapp.New(app.tui), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func RunHTTP(app *App) error {
	server := &http.Server{
		Addr:              app.cfg.HTTPAddr,
		Handler:           app.api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
