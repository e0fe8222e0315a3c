// Package metrics provides observability hooks for frontend build runs.
//
// It implements the Null Object pattern: components receive a Recorder
// through dependency injection and default to NoopRecorder, so no call site
// ever nil-checks before recording. When export is configured, the CLI swaps
// in PrometheusRecorder and writes a node_exporter textfile-collector
// snapshot after the run, which suits a batch tool better than holding a
// scrape endpoint open.
//
//	recorder := metrics.NewPrometheusRecorder(nil)
//	defer recorder.WriteTextfile(path)
package metrics
