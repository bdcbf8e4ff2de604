package livingapps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordURLRoundTrip(t *testing.T) {
	ref := RecordURL("6995a47d82b14bea6d97e0b0", "rec-123")
	assert.Equal(t, "https://my.living-apps.de/gateway/apps/6995a47d82b14bea6d97e0b0/rec-123", ref)
	assert.Equal(t, "rec-123", ExtractRecordID(ref))
}

func TestExtractRecordID(t *testing.T) {
	cases := []struct {
		name string
		ref  string
		want string
	}{
		{"full url", "https://my.living-apps.de/gateway/apps/abc/rec-1", "rec-1"},
		{"bare id", "rec-9", "rec-9"},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"trailing slash", "https://my.living-apps.de/gateway/apps/abc/", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractRecordID(tc.ref))
		})
	}
}

func TestExtractRecordIDPtr(t *testing.T) {
	assert.Equal(t, "", ExtractRecordIDPtr(nil))

	ref := RecordURL("app", "rec-5")
	assert.Equal(t, "rec-5", ExtractRecordIDPtr(&ref))
}
