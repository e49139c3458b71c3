package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"syndic/config"
	"syndic/internal/api"
	"syndic/internal/auth"
	"syndic/internal/dashboard"
	"syndic/internal/db"
	"syndic/internal/health"
	"syndic/internal/logs"
	"syndic/internal/mail"
	"syndic/internal/middleware"
	"syndic/internal/models"
	"syndic/internal/profile"
	"syndic/internal/repo"
	"syndic/internal/verify"
	"syndic/internal/weather"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server
	mailWorker *mail.Worker

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Logs */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) DB */
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		&models.Credential{},
		&models.Tenant{},
		&models.Owner{},
		&models.Employee{},
		&models.BlockAdmin{},
		&models.Block{},
		&models.Room{},
		&models.ParkingSlot{},
		&models.Identity{},
		&models.Rental{},
		&models.MaintenanceRequest{},
		&models.Activity{},
		&models.Notification{},
		&models.SystemAlert{},
		&models.StatsHistory{},
		&models.EmailMessage{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	/* 3) Stores */
	creds := repo.NewCredentialStore(a.db)
	profiles := repo.NewProfileStore(a.db)
	tenants := repo.NewTenantStore(a.db)
	owners := repo.NewOwnerStore(a.db)
	employees := repo.NewEmployeeStore(a.db)
	admins := repo.NewAdminStore(a.db)
	rooms := repo.NewRoomStore(a.db)
	maintenance := repo.NewMaintenanceStore(a.db)
	activity := repo.NewActivityStore(a.db)
	outbox := repo.NewOutboxStore(a.db)
	stats := repo.NewDashboardStore(a.db)

	/* 4) Services */
	tokens := auth.NewTokens(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL)
	authSvc := auth.NewService(creds, profiles, admins, activity, tokens)
	verifySvc := verify.NewService(a.db, profiles, outbox, creds, a.cfg.Mail.PublicURL)
	profileSvc := profile.NewService(a.db, profiles, creds, verifySvc, rooms)
	dashboardSvc := dashboard.NewService(stats, owners, tenants, employees, rooms)
	weatherClient := weather.NewClient(a.cfg.Weather.BaseURL, a.cfg.Weather.APIKey)

	sender := mail.NewSMTPSender(a.cfg.Mail.Host, a.cfg.Mail.Port,
		a.cfg.Mail.Username, a.cfg.Mail.Password, a.cfg.Mail.From)
	a.mailWorker = mail.NewWorker(outbox, sender)

	/* 5) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
	)

	/* 6) Health */
	health.RegisterRoutesWithDB(a.Router, a.db) // /healthz, /readyz

	/* 7) REST surface */
	restAPI := api.New(api.Deps{
		Creds:       creds,
		Tenants:     tenants,
		Owners:      owners,
		Employees:   employees,
		Admins:      admins,
		Rooms:       rooms,
		Maintenance: maintenance,
		Activity:    activity,
		Stats:       stats,
		Auth:        authSvc,
		Profiles:    profileSvc,
		Verifier:    verifySvc,
		Dashboards:  dashboardSvc,
		Weather:     weatherClient,
		FrontendURL: a.cfg.Mail.FrontendURL,
	})
	restAPI.RegisterRoutes(a.Router, middleware.BearerAuth(tokens, a.cfg.Auth.RequireToken))

	/* log known routes at startup */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	a.mailWorker.Start()

	// Hard timeouts matter in production.
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	a.mailWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	return nil
}
