// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// prometheus.go — prometheus.Collector bridging published values to
// gauges: one gauge per Last key, one per horizon for the continuous
// family, and a retained-event count for Discrete keys.

package vitals

import "github.com/prometheus/client_golang/prometheus"

var horizonLabels = [4]string{"raw", "1m", "5m", "15m"}

type promCollector struct {
	r           *Recorder
	scalarDesc  *prometheus.Desc
	horizonDesc *prometheus.Desc
	eventsDesc  *prometheus.Desc
}

// Collector returns a prometheus.Collector exposing the recorder's
// published state under the given namespace ("vitals" when empty).
// Register it with any prometheus.Registerer; values are read from the
// current snapshot at scrape time.
func (r *Recorder) Collector(namespace string) prometheus.Collector {
	if namespace == "" {
		namespace = "vitals"
	}
	return &promCollector{
		r: r,
		scalarDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "value"),
			"Most recent published value for a last-typed metric key.",
			[]string{"key"}, nil,
		),
		horizonDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "smoothed"),
			"Published value for a continuous metric key at one smoothing horizon.",
			[]string{"key", "horizon"}, nil,
		),
		eventsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "events"),
			"Number of retained events for a discrete metric key.",
			[]string{"key"}, nil,
		),
	}
}

func (c *promCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.scalarDesc
	ch <- c.horizonDesc
	ch <- c.eventsDesc
}

func (c *promCollector) Collect(ch chan<- prometheus.Metric) {
	for key, p := range c.r.Snapshot() {
		switch p.Type {
		case Last:
			ch <- prometheus.MustNewConstMetric(
				c.scalarDesc, prometheus.GaugeValue, p.Scalar, key)
		case Discrete:
			ch <- prometheus.MustNewConstMetric(
				c.eventsDesc, prometheus.GaugeValue, float64(len(p.Events)), key)
		case Continuous, ContinuousMax, ContinuousSum:
			for i, horizon := range horizonLabels {
				ch <- prometheus.MustNewConstMetric(
					c.horizonDesc, prometheus.GaugeValue, p.Smoothed[i], key, horizon)
			}
		}
	}
}
