package redis

import "fmt"

const (
	// KeyDocument holds the raw YAML of the last good sitemap document
	KeyDocument = "sidenav:document"
	// KeyDocumentUpdated holds the RFC3339 time the document was saved
	KeyDocumentUpdated = "sidenav:document:updated"
	// KeyVariants is the set of variant names in the saved document
	KeyVariants = "sidenav:variants"
	// KeyPrefixHits is the prefix for per-variant active entry counters
	KeyPrefixHits = "sidenav:hits:"
)

// HitsKey returns the Redis hash key counting active entries of a variant
func HitsKey(variant string) string {
	return KeyPrefixHits + variant
}

// ExtractVariant extracts the variant name from a hits key
func ExtractVariant(key string) (string, error) {
	if len(key) <= len(KeyPrefixHits) || key[:len(KeyPrefixHits)] != KeyPrefixHits {
		return "", fmt.Errorf("invalid hits key: %s", key)
	}
	return key[len(KeyPrefixHits):], nil
}
