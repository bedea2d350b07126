// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package supervisor provides process supervision for Recetario using suture v4.

The tree has two layers so that a crashing background sweep never takes
the HTTP server down with it:

	RootSupervisor ("recetario")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── JanitorService (cache, limiter and policy-cache sweeps, checkpoints)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events
are logged through sutureslog on top of the zerolog-backed slog adapter
from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewJanitorService(tasks, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
