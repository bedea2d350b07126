// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package services provides suture.Service wrappers for Recetario components.

Each wrapper translates a component's lifecycle into suture's
context-aware Serve(ctx) error and implements fmt.Stringer so supervisor
events name the service.

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine;
canceling the context triggers Shutdown with a bounded timeout so
in-flight requests can drain. http.ErrServerClosed is not an error.

JanitorService runs a list of JanitorTask sweeps on a ticker: expired
recommendation cache entries, idle login limiter buckets, expired
authorization decisions and DuckDB checkpoints. A failing task is logged
and the next task still runs; the janitor itself only returns when its
context is canceled.
*/
package services
