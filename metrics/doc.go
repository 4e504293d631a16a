// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes prometheus collectors for the DayVibe API.

Collectors are package-level and registered in init; handlers increment
them directly:

	metrics.UploadsTotal.Inc()
	metrics.AnalysesTotal.WithLabelValues(models.SourceFallback).Inc()

Handler returns the promhttp handler served at GET /metrics.
*/
package metrics
