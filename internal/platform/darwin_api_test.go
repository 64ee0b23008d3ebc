//go:build darwin

package platform

import (
	"os"
	"testing"
)

func TestCommString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		comm []int8
		want string
	}{
		{
			name: "terminated",
			comm: []int8{'F', 'i', 'n', 'd', 'e', 'r', 0, 0},
			want: "Finder",
		},
		{
			name: "full buffer without terminator",
			comm: []int8{'a', 'b', 'c'},
			want: "abc",
		},
		{
			name: "empty",
			comm: []int8{0},
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := commString(tt.comm); got != tt.want {
				t.Errorf("commString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListProcesses_IncludesSelf(t *testing.T) {
	t.Parallel()

	api := NewDarwinAPI()
	processes, err := api.ListProcesses()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(processes) == 0 {
		t.Fatal("Expected a non-empty process list")
	}

	self := uint32(os.Getpid())
	for _, p := range processes {
		if p.PID == self {
			return
		}
	}
	t.Errorf("Expected the test process (pid %d) in the listing", self)
}
