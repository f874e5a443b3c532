// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/classreserve/internal/app/booking"
	classesfeature "github.com/dalemusser/classreserve/internal/app/features/classes"
	errorsfeature "github.com/dalemusser/classreserve/internal/app/features/errors"
	exportfeature "github.com/dalemusser/classreserve/internal/app/features/export"
	healthfeature "github.com/dalemusser/classreserve/internal/app/features/health"
	loginfeature "github.com/dalemusser/classreserve/internal/app/features/login"
	orderfeature "github.com/dalemusser/classreserve/internal/app/features/order"
	signupfeature "github.com/dalemusser/classreserve/internal/app/features/signup"
	"github.com/dalemusser/classreserve/internal/app/store/authkeys"
	classstore "github.com/dalemusser/classreserve/internal/app/store/classes"
	orderstore "github.com/dalemusser/classreserve/internal/app/store/classorder"
	signupstore "github.com/dalemusser/classreserve/internal/app/store/signups"
	"github.com/dalemusser/classreserve/internal/app/system/auth"
	"github.com/dalemusser/classreserve/internal/app/system/clock"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ClassReserve initializes the session
// store, builds the shared stores and the booking service, applies the
// admin-credential middleware, and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	fileStore, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("file storage init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	clk := clock.System{}
	errLog := errorsfeature.NewErrorLogger(logger)

	classes := classstore.New(db)
	signups := signupstore.New(db)
	order := orderstore.New(db)
	keys := authkeys.New(db)

	bookingSvc := booking.New(classes, signups, clk)

	r := chi.NewRouter()

	// Global auth middleware: flags requests carrying a valid admin session
	// or key so route groups can gate on it.
	r.Use(auth.LoadAdmin(keys, clk, logger))
	requireAdmin := auth.RequireAdmin(errLog.Unauthorized)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded images with pre-compressed file support
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Class catalog (public reads, admin writes)
	classesHandler := classesfeature.NewHandler(classes, signups, order, bookingSvc, fileStore, clk, errLog, logger)
	r.Mount("/classes", classesfeature.Routes(classesHandler, requireAdmin))

	// Public booking
	signupHandler := signupfeature.NewHandler(bookingSvc, errLog, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(appCfg.AdminUsername, appCfg.AdminPasswordHash, appCfg.AdminKeyTTL, keys, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Post("/logout", loginHandler.HandleLogout)

	// Display ordering (admin)
	orderHandler := orderfeature.NewHandler(order, errLog, logger)
	r.Mount("/order", orderfeature.Routes(orderHandler, requireAdmin))

	// CSV export (admin)
	exportHandler := exportfeature.NewHandler(classes, signups, errLog, logger)
	r.With(requireAdmin).Get("/signups.csv", exportHandler.ServeCSV)

	return r, nil
}
