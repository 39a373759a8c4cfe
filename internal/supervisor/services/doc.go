// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package services adapts sponsordesk's long-running components to
suture.Service.

  - HTTPServerService: ListenAndServe until canceled, then graceful Shutdown
  - StoreGCService: periodic badger value-log garbage collection

Every service returns ctx.Err() on cancellation and implements fmt.Stringer
so suture can name it in its event log.
*/
package services
