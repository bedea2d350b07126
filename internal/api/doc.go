// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package api provides the HTTP surface of Recetario using the chi router.

Every response uses the APIResponse envelope:

	{
	  "status": "success" | "error",
	  "data": ...,
	  "metadata": {"timestamp": ..., "query_time_ms": ..., "request_id": ...},
	  "error": {"code": "...", "message": "..."}
	}

Routes (all under /api/v1):

	POST /auth/register                 create a user account, returns a token
	POST /auth/login                    returns {token, expires_at, user}
	GET  /recommendations/smart         hybrid recommendations (users only)
	GET  /recommendations/classic       rule-based recommendations (users only)
	POST /recipes/{id}/like             toggle a like (users only)
	GET  /recipes                       paginated listing, ?q=&tag=&difficulty=&sort=&page=, anonymous
	GET  /recipes/search/ingredients    ?ingredient=ID&ingredient=ID, anonymous
	GET  /preferences                   favorite tag and ingredient IDs (users only)
	PUT  /preferences                   replace favorites (users only)
	GET  /ingredients/search            ?q= autocomplete, anonymous
	GET  /tags                          tag catalog, anonymous
	GET  /health                        liveness and database ping

Prometheus metrics are served at /metrics.

Error mapping:

	validation        400 VALIDATION_ERROR
	missing token     401 UNAUTHORIZED / INVALID_TOKEN
	role forbidden    403 FORBIDDEN
	not found         404 NOT_FOUND
	username taken    409 CONFLICT
	throttled         429 RATE_LIMITED
	breaker open      503 SERVICE_UNAVAILABLE
	anything else     500 INTERNAL_ERROR
*/
package api
