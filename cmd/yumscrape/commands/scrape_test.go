package commands

import "testing"

func TestParseBodySize(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"10MB", 10_000_000, false},
		{"1MiB", 1 << 20, false},
		{" 512KB ", 512_000, false},
		{"lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBodySize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBodySize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBodySize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
