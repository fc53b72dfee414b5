package conv

import (
	"testing"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		name      string
		in        int
		want      uint32
		wantPanic bool
	}{
		{"zero", 0, 0, false},
		{"small", 42, 42, false},
		{"large", 1 << 30, 1 << 30, false},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, wantPanic %v", r, tt.wantPanic)
				}
			}()
			if got := IntToUint32(tt.in); got != tt.want {
				t.Errorf("IntToUint32(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
