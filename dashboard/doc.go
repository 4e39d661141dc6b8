// Package dashboard serves the interactive JSON API for managing search
// regression tests, running ad-hoc queries, and executing batch test runs.
//
// Routes:
//
//	GET    /healthz              liveness probe
//	GET    /api/tests            list stored tests
//	POST   /api/tests            create a test (409 on duplicate id)
//	PUT    /api/tests/:id        partial update (404 on unknown id)
//	DELETE /api/tests/:id        delete (404 on unknown id)
//	POST   /api/tests/run        run all or selected tests, returns report
//	POST   /api/search           embed a query and search
//	GET    /api/collections      collection names plus default details
//
// Errors are returned inline as {"error": "..."} JSON with an appropriate
// status code; a failing upstream never kills the server.
package dashboard
