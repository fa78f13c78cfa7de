// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CacheStore: TTL-bound result cache with access accounting
//   - DecisionStore: durable decision persistence (upsert by external id)
//   - CommentaryStore: durable commentary persistence
//   - QueryLog: append-only lookup analytics
//   - DecisionSearcher: external decision search source
//   - CommentarySearcher: external commentary search source
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
