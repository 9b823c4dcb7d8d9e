package exitcodes

import "testing"

func TestFromFailures(t *testing.T) {
	tests := []struct {
		failed int
		want   int
	}{
		{0, Success},
		{1, 1},
		{2, 2},
		{125, 125},
		{300, MaxFailures},
	}
	for _, tt := range tests {
		if got := FromFailures(tt.failed); got != tt.want {
			t.Errorf("FromFailures(%d) = %d, want %d", tt.failed, got, tt.want)
		}
	}
}
