package livingapps

import "strings"

// recordURLBase is the canonical prefix for encoded record references.
// Only the trailing record id carries meaning when resolving a reference;
// the prefix is kept stable so round-trips produce byte-identical values.
const recordURLBase = "https://my.living-apps.de/gateway/apps"

// RecordURL encodes an app id and record id into a reference string.
// Callers must not pass an empty record id; omit the field instead.
func RecordURL(appID, recordID string) string {
	return recordURLBase + "/" + appID + "/" + recordID
}

// ExtractRecordID decodes a reference string into the referenced record id.
// It returns the last slash-delimited segment, or "" for absent, empty, or
// malformed input (for example a reference ending in a slash). It never
// fails: anything without a usable trailing segment degrades to "unlinked".
func ExtractRecordID(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	idx := strings.LastIndex(ref, "/")
	if idx < 0 {
		return ref
	}
	return ref[idx+1:]
}

// ExtractRecordIDPtr is a nil-tolerant variant for optional reference fields.
func ExtractRecordIDPtr(ref *string) string {
	if ref == nil {
		return ""
	}
	return ExtractRecordID(*ref)
}
