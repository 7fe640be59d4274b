// Package services contains the core application services that
// implement the driving ports. Services orchestrate the ingestion
// pipeline (load, normalise, chunk, store), ranked retrieval over
// the inverted index, and document read access. They depend only on
// domain types and port interfaces, never on concrete adapters.
package services
