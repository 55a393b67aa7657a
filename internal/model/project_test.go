package model

import "testing"

func TestProjectProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{name: "no tasks", completed: 0, total: 0, want: 0},
		{name: "none done", completed: 0, total: 4, want: 0},
		{name: "half done", completed: 2, total: 4, want: 50},
		{name: "all done", completed: 4, total: 4, want: 100},
		{name: "one third rounds down", completed: 1, total: 3, want: 33},
		{name: "two thirds rounds up", completed: 2, total: 3, want: 67},
		{name: "one of seven", completed: 1, total: 7, want: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{Title: "Garden"}
			for i := 0; i < tt.total; i++ {
				p.Tasks = append(p.Tasks, Task{Completed: i < tt.completed})
			}

			if got := p.Progress(); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}
