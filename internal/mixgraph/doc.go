// Package mixgraph compiles a ducking envelope and a set of audio stems into
// the declarative filter-graph program consumed by the rendering engine.
package mixgraph
