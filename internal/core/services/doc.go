// Package services implements the driving ports: the citation service
// wrapping the pure citation engine, and the retrieval service running
// cache-first lookups against the external legal-data sources.
package services
