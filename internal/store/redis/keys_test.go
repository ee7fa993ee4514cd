package redis

import "testing"

func TestExtractRecordID(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: RecordKey("abc123"), want: "abc123"},
		{key: KeyPrefixRecord, wantErr: true},
		{key: "qrhist:usage", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ExtractRecordID(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractRecordID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractRecordID() = %q, want %q", got, tt.want)
			}
		})
	}
}
