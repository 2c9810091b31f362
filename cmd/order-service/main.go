// Command order-service accepts orders over HTTP and checks stock with the
// inventory service before confirming them.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/kbukum/order-service/apidoc"
	"github.com/kbukum/order-service/bootstrap"
	"github.com/kbukum/order-service/config"
	"github.com/kbukum/order-service/httpclient"
	"github.com/kbukum/order-service/inventory"
	"github.com/kbukum/order-service/logger"
	"github.com/kbukum/order-service/observability"
	"github.com/kbukum/order-service/order"
	"github.com/kbukum/order-service/server"
	"github.com/kbukum/order-service/server/middleware"
	"github.com/kbukum/order-service/version"
)

const serviceName = "order-service"

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	envFile := flag.String("env", "", "path to .env file")
	flag.Parse()

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	var cfg AppConfig
	files, err := config.LoadConfig(serviceName, &cfg, opts...)
	if err != nil {
		logger.Fatal("Failed to load configuration", logger.Fields(logger.FieldError, err.Error()))
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		logger.Fatal("Invalid configuration", logger.Fields(logger.FieldError, err.Error()))
	}
	app.Logger.Info("Configuration loaded", logger.Fields(
		logger.FieldConfigFile, files.ConfigFile,
		"env_file", files.EnvFile,
	))

	if err := wire(app); err != nil {
		app.Logger.Fatal("Failed to wire application", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := app.Run(context.Background()); err != nil {
		app.Logger.Error("Application stopped with error", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}

// wire builds the inventory handle, the order endpoint and the server, and
// registers them as components. Telemetry is registered first so its
// providers are installed before any traffic.
func wire(app *bootstrap.App[*AppConfig]) error {
	cfg := app.Cfg

	telemetry := observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}

	stock, err := inventory.NewClient(cfg.Inventory.URL, cfg.Inventory.Policy(),
		httpclient.WithLogger(app.Logger.WithComponent(inventory.ServiceName)))
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(httpclient.NewComponent(stock.HTTP())); err != nil {
		return err
	}

	requestMetrics, err := observability.NewRequestMetrics(observability.Meter(serviceName))
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyDefaults(cfg.Name, app.Components.HealthAll, middleware.Metrics(requestMetrics))

	router := srv.GinEngine()
	order.NewHandler(order.NewService(stock, app.Logger)).Register(router)

	if cfg.Docs.Enabled {
		docOpts := order.DocOptions()
		if cfg.Docs.ServerURL != "" {
			docOpts = append(docOpts, apidoc.WithServer(cfg.Docs.ServerURL, cfg.Environment))
		}
		doc := apidoc.NewDocument(apidoc.BuildMetadata().Override(cfg.Docs), docOpts...)
		if err := apidoc.Register(router, doc); err != nil {
			return err
		}
	}

	return app.RegisterComponent(server.NewComponent(srv))
}
