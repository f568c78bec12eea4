// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervision tree.

	RootSupervisor ("rendezvous")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService
	├── MessagingSupervisor ("messaging-layer")
	│   └── planner.Invalidator
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff. Supervisor events are logged
through sutureslog, which in turn writes to the zerolog logger via
logging.NewSlogLogger.

Usage in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewMaintenanceService(st, svc, cfg))
	tree.AddMessagingService(planner.NewInvalidator(svc, bus))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err = tree.Serve(ctx)
*/
package supervisor
