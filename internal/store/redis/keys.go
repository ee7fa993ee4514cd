package redis

import "fmt"

const (
	// KeyPrefixRecord is the prefix for history record keys
	KeyPrefixRecord = "qrhist:record:"
	// KeyAllRecords is the key for the set of all record IDs
	KeyAllRecords = "qrhist:records:all"
	// KeyUsage is the hash of action usage counters, one field per effect type
	KeyUsage = "qrhist:usage"
	// KeySettings holds the JSON encoded user settings
	KeySettings = "qrhist:settings"
)

// RecordKey returns the Redis key for a record by ID
func RecordKey(id string) string {
	return KeyPrefixRecord + id
}

// ExtractRecordID extracts the record ID from a Redis key
func ExtractRecordID(key string) (string, error) {
	if len(key) <= len(KeyPrefixRecord) || key[:len(KeyPrefixRecord)] != KeyPrefixRecord {
		return "", fmt.Errorf("invalid record key: %s", key)
	}
	return key[len(KeyPrefixRecord):], nil
}
