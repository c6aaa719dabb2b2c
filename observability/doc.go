// Package observability instruments credential and token operations with
// OpenTelemetry traces, metrics and component health checks.
//
// Wire the global providers once at startup, then hang spans and
// instruments off them:
//
//	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{ServiceName: "my-service"})
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTokenVerify)
//	defer span.End()
//
//	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{ServiceName: "my-service"})
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	metrics.RecordTokenIssued(ctx, "access")
//	metrics.RecordTokenVerified(ctx, observability.OutcomeExpired)
//
// Components that implement HealthChecker roll up into one report:
//
//	health := observability.CheckAll(ctx, "my-service", version.GetShortVersion(), tokenService)
package observability
