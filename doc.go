// Package banksort reconciles bank-statement records into a durable ledger,
// classifies each entry with ordered rule lists, and aggregates the ledger
// into time-bucketed summaries for reporting.
//
// The package is the engine only. Statement parsing, terminal prompting,
// report rendering and quote retrieval live in subpackages and are consumed
// through small interfaces, so that batch and interactive runs share the same
// reconciliation logic.
package banksort
