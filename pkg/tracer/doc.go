// Package tracer provides a simplified API for distributed tracing with
// OpenTelemetry.
//
// It wraps the OpenTelemetry TracerProvider and offers convenient methods
// for creating spans, recording errors, and attaching attributes, so
// application code does not deal with the SDK directly.
//
//	cfg := tracer.Config{
//	    ServiceName:  "curator-api",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}
//	tc := tracer.NewClient(cfg, log)
//
//	ctx, span := tc.StartSpan(ctx, "retrieve-context")
//	defer span.End()
package tracer
