// Package api serves the generate and draw pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz              liveness and build version
//	GET  /v1/presets           named presets
//	POST /v1/generate          rewrite the axiom, return the program
//	POST /v1/draw?format=svg   run the whole pipeline, return one artifact
//
// Request bodies are JSON [pipeline.Options], optionally naming a "preset"
// whose values fill the fields the body leaves out:
//
//	{"preset": "koch", "generations": 3}
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with the
// status from [errors.HTTPStatus]. Every response carries an X-Request-ID.
//
// Generation is capped at [Options.MaxLength] symbols regardless of what the
// request asks for; requests over the cap fail with TOO_LARGE (413).
package api
