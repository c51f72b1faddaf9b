// Package analyst answers ad-hoc financial queries against a flat,
// append-only ledger of transactional records.
//
// The core is an entity-resolution-plus-aggregation engine: given a
// free-text customer or project name, a fuzzy string match selects the
// canonical entity, and the metric engine aggregates revenue and cost
// columns into derived financial metrics (revenue, gross margin, EBITDA),
// each with an absolute and a percentage-of-revenue view.
//
// Nothing is persisted beyond the input dataset and no state survives
// between calls: every query reloads and recomputes from the dataset
// source.
package analyst
