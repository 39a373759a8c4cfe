// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package supervisor runs the long-lived parts of sponsordesk under a suture v4
supervisor tree.

# Layout

	RootSupervisor ("sponsordesk")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── StoreGCService (badger backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Failures are counted
per layer, so a misbehaving garbage collector never takes the API down.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if gc, ok := kv.(services.GarbageCollector); ok {
	    tree.AddMaintenanceService(services.NewStoreGCService(gc, cfg.Store.GCInterval))
	}
	errCh := tree.ServeBackground(ctx)

# Logging

Supervisor events (service panics, terminations, backoff) are routed through
sutureslog into the zerolog logger via logging.NewSlogLogger.

See the services subpackage for the service wrappers.
*/
package supervisor
