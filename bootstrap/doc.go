// Package bootstrap runs the order service lifecycle: typed config
// validation, logger initialization, component start in registration order,
// startup hooks, a ready check, and graceful shutdown on SIGINT or SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	_ = app.RegisterComponent(server.NewComponent(srv))
//	return app.Run(ctx)
package bootstrap
