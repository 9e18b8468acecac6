// Package main initializes and starts the sendtime HTTP server, wiring
// configuration, logging, the ERP client, identity resolution and the
// timesheet submission pipeline.
package main

import (
	"fmt"
	stdlog "log"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/timereg/sendtime/internal/config"
	"github.com/timereg/sendtime/internal/erp"
	"github.com/timereg/sendtime/internal/identity"
	"github.com/timereg/sendtime/internal/logger"
	"github.com/timereg/sendtime/internal/server/handler/http"
	"github.com/timereg/sendtime/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load environment configuration; the ERP connection settings are
	// required and missing ones abort startup.
	options, err := config.Load()
	if err != nil {
		stdlog.Fatalf("configuration error: %v", err)
	}

	// Print build metadata (or "N/A" if unset).
	versionStr, buildDateStr := version, buildDate
	if versionStr == "" {
		versionStr = "N/A"
	}
	if buildDateStr == "" {
		buildDateStr = "N/A"
	}
	fmt.Printf("Build version: %s\n", versionStr)
	fmt.Printf("Build date: %s\n", buildDateStr)

	// Initialize structured logging.
	level := "info"
	if options.Debug {
		level = "debug"
	}
	zapLogger, err := logger.New(level)
	if err != nil {
		stdlog.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// ERP client and identity resolution with its short-lived cache.
	client := erp.NewXMLRPCClient(options.ERPURL, options.ERPDatabase)
	cache := identity.NewLRUCache(options.IdentityCacheTTL)
	resolver := identity.NewResolver(client, cache, options.ERPAdminLogin, options.ERPAdminPassword, zapLogger)

	// Select the identity source once at startup: the trusted proxy
	// header in production, a fixed login in debug mode.
	var source identity.Source
	if options.Debug {
		zapLogger.Warn("debug mode: substituting fixed identity for all requests",
			zap.String("login", options.DebugUser))
		source = &identity.FixedSource{Login: options.DebugUser}
	} else {
		source = &identity.TrustedHeaderSource{Header: options.RemoteUserHeader}
	}

	// Submission pipeline and HTTP surface.
	timesheetService := service.NewService(resolver, client, options.TimesheetJournalID, options.AllowEmptyDescription)
	timesheetHandler := &http.TimesheetHandler{
		Service: timesheetService,
		Source:  source,
		Log:     zapLogger,
	}
	router := http.NewRouter(timesheetHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Address),
		zap.String("erp_url", options.ERPURL),
		zap.String("erp_database", options.ERPDatabase),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
