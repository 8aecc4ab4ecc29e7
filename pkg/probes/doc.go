// Package probes provides the built-in probe bundles for the CQH health engine.
//
// The infrastructure bundle covers the dependencies a typical service carries:
// PostgreSQL connectivity, system memory and disk usage, and optionally a
// Redis cache, a NATS event bus, and HTTP endpoints. The compliance bundle
// covers the named regulatory checks, each evaluating an injectable checklist
// of boolean conditions.
//
// Example usage:
//
//	m := health.New(health.Options{EnableAutoCheck: true})
//
//	err := probes.RegisterInfrastructure(m, probes.Sources{
//	    Database: pool,
//	    Cache:    redisClient,
//	})
//
// Probes here use only the engine's public registration contract; hosts can
// register entirely different probes alongside or instead of these bundles.
package probes
