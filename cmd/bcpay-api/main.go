package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo"
	echo_middleware "github.com/labstack/echo/middleware"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"go.opencensus.io/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/dialects/postgresql"

	"github.com/gebv/bcpay/config"
	"github.com/gebv/bcpay/httputils"
	"github.com/gebv/bcpay/interceptors/auth"
	"github.com/gebv/bcpay/interceptors/settings"
	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/provider/paybc"
	"github.com/gebv/bcpay/schema"
	"github.com/gebv/bcpay/services"
	"github.com/gebv/bcpay/services/auditor"
	"github.com/gebv/bcpay/services/codes"
	"github.com/gebv/bcpay/services/payment"
	"github.com/gebv/bcpay/services/worker"
	"github.com/gebv/bcpay/util"
)

var (
	VERSION = "dev"

	configPathF   = flag.String("config", "", "Path to YAML config, environment variables override it.")
	migrateF      = flag.Bool("migrate", false, "Apply database schema on start.")
	traceSamplerF = flag.Float64("trace-sampler", 0.1, "Probability of tracing a request to PayBC.")
)

func main() {
	flag.Parse()
	defaultLogger("INFO")

	cfg, err := config.Load(*configPathF)
	if err != nil {
		zap.L().Panic("Failed load config.", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		zap.L().Panic("Invalid config.", zap.Error(err))
	}
	defaultLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	zap.L().Info("Starting bcpay api...", zap.String("version", VERSION))
	defer func() { zap.L().Info("Done.") }()

	trace.RegisterExporter(services.NewLogExporter(zap.L().Named("trace")))
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(*traceSamplerF)})

	calendar, err := util.NewCalendar(cfg.Timezone, cfg.Holidays)
	if err != nil {
		zap.L().Panic("Failed configure calendar.", zap.Error(err))
	}

	var (
		sqlDB  *sql.DB
		store  payment.Store
		pstore *provider.Store
		db     *reform.DB
	)
	if cfg.PGConn != "" {
		sqlDB = setupPostgres(cfg.PGConn, 0, 5, 5)
		defer sqlDB.Close()
		if *migrateF {
			if err := schema.Apply(ctx, sqlDB); err != nil {
				zap.L().Panic("Failed apply schema.", zap.Error(err))
			}
			zap.L().Info("Schema applied.")
		}
		db = reform.NewDB(sqlDB, postgresql.Dialect, reform.NewPrintfLogger(zap.L().Sugar().Debugf))
		pstore = &provider.Store{DB: db}
		store = pstore
	} else {
		zap.L().Warn("PG_CONN is not set, accounts and invoices are not saved.")
	}

	var publisher payment.Publisher
	if cfg.Nats.URL != "" {
		nc, err := nats.Connect(cfg.Nats.URL, nats.Name("bcpay-api"))
		if err != nil {
			zap.L().Panic("Failed connect to NATS.", zap.String("url", cfg.Nats.URL), zap.Error(err))
		}
		defer nc.Close()
		enc, err := nats.NewEncodedConn(nc, nats.JSON_ENCODER)
		if err != nil {
			zap.L().Panic("Failed create encoded connection.", zap.Error(err))
		}
		publisher = enc
		zap.L().Info("NATS - Connected!")

		if pstore != nil {
			sub, err := worker.SubToNATS(nc, cfg.Nats.UpdateSubject, pstore)
			if err != nil {
				zap.L().Panic("Failed start invoice update worker.", zap.Error(err))
			}
			defer sub.Unsubscribe()
		}
	} else {
		zap.L().Warn("NATS_URL is not set, payment events are not published.")
	}

	paybcProvider := paybc.NewProvider(cfg.PayBCConfig())
	prometheus.MustRegister(paybcProvider)
	factory := provider.NewFactory(paybcProvider)

	paymentService := payment.NewService(factory, store, publisher, payment.Config{
		InvoicePrefix:     cfg.PayBC.InvoicePrefix,
		SubjectFormat:     cfg.Nats.PaymentSubject,
		ValidRedirectURLs: cfg.ValidRedirectURLs,
		Calendar:          calendar,
	})

	e := echo.New()
	e.HideBanner = true

	e.Use(echo_middleware.CORSWithConfig(echo_middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET,
			echo.PUT,
			echo.POST,
			echo.DELETE,
			echo.OPTIONS,
			echo.HEAD,
		},
	}))
	e.Use(echo_middleware.Recover())
	e.Use(echo_middleware.Logger())
	e.Use(echo_middleware.BodyLimit("64K"))
	e.Use(settings.Middleware(VERSION))
	if db != nil {
		httpAuditor := auditor.NewHttpAuditor(&auditor.PGSink{DB: db})
		defer httpAuditor.Stop()
		prometheus.MustRegister(httpAuditor)
		e.Use(httpAuditor.Middleware())
	}

	payment.NewServer(paymentService).Register(e.Group("/api/v1"))
	if db != nil && cfg.JWTSecret != "" {
		admin := e.Group("/admin/codes", auth.Middleware([]byte(cfg.JWTSecret), auth.RoleStaff))
		codes.NewServer(&codes.PGStore{DB: db}).Register(admin)
	} else {
		zap.L().Warn("Admin API is disabled, PG_CONN and JWT_SECRET are required.")
	}

	var ping func() error
	if sqlDB != nil {
		ping = sqlDB.Ping
	}
	debugSrv := &http.Server{Addr: cfg.DebugAddr, Handler: httputils.DebugMux(prometheus.DefaultGatherer, ping)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("Start api server.",
			zap.String("address", cfg.HTTPAddr),
			zap.Strings("paths", []string{"/api/v1", "/admin/codes"}),
		)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		zap.L().Info("Start debug server.", zap.String("address", cfg.DebugAddr))
		if err := debugSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("Stopping servers.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Failed shutdown api server.", zap.Error(err))
		}
		if err := debugSrv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Failed shutdown debug server.", zap.Error(err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("Server failed.", zap.Error(err))
	}
}

// Configure configure zap logger.
//
// Available values of level:
// - DEBUG
// - INFO
// - WARN
// - ERROR
// - DPANIC
// - PANIC
// - FATAL
func defaultLogger(levelSet string) {
	level := zapcore.InfoLevel
	if err := level.Set(levelSet); err != nil {
		panic(err)
	}
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(level)
	l, err := config.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(l)
	zap.RedirectStdLog(l.Named("stdlog"))
}

func setupPostgres(conn string, maxLifetime time.Duration, maxOpen, maxIdle int) *sql.DB {
	sqlDB, err := sql.Open("postgres", conn)
	if err != nil {
		zap.L().Panic("Failed to connect to PostgreSQL.", zap.Error(err))
	}
	sqlDB.SetConnMaxLifetime(maxLifetime)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if err = sqlDB.Ping(); err != nil {
		zap.L().Panic("Failed to connect ping PostgreSQL.", zap.Error(err))
	}
	zap.L().Info("Postgres - Connected!")

	return sqlDB
}
