// Package infra holds the technology adapters the analysis service is
// assembled from: plan table loaders, profile sources, result stores,
// metrics exporters and the MQTT publisher. Each adapter implements an
// interface defined by a core package and stays replaceable.
package infra
