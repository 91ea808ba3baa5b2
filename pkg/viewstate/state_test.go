package viewstate

import (
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusLoading, "Loading"},
		{StatusSuccess, "Success"},
		{StatusFailure, "Failure"},
		{Status(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestState_Variants(t *testing.T) {
	boom := errors.New("Error: 404 Not Found")

	tests := []struct {
		name     string
		state    State[string]
		status   Status
		data     string
		hasData  bool
		message  string
		wantDone bool
	}{
		{"zero value", State[string]{}, StatusLoading, "", false, "", false},
		{"loading", Loading[string](), StatusLoading, "", false, "", false},
		{"success", Success("Goku"), StatusSuccess, "Goku", true, "", true},
		{"failure", Failure[string](boom), StatusFailure, "", false, "Error: 404 Not Found", true},
		{"failure nil error", Failure[string](nil), StatusFailure, "", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.state.Status() != tt.status {
				t.Errorf("Status() = %v, want %v", tt.state.Status(), tt.status)
			}
			data, ok := tt.state.Data()
			if ok != tt.hasData || data != tt.data {
				t.Errorf("Data() = %q, %v; want %q, %v", data, ok, tt.data, tt.hasData)
			}
			if tt.state.Message() != tt.message {
				t.Errorf("Message() = %q, want %q", tt.state.Message(), tt.message)
			}
			if tt.state.IsDone() != tt.wantDone {
				t.Errorf("IsDone() = %v, want %v", tt.state.IsDone(), tt.wantDone)
			}
		})
	}
}

func TestState_ErrOnlyOnFailure(t *testing.T) {
	boom := errors.New("boom")

	if err := Success(1).Err(); err != nil {
		t.Errorf("Success.Err() = %v, want nil", err)
	}
	if err := Loading[int]().Err(); err != nil {
		t.Errorf("Loading.Err() = %v, want nil", err)
	}
	if err := Failure[int](boom).Err(); !errors.Is(err, boom) {
		t.Errorf("Failure.Err() = %v, want %v", err, boom)
	}
}
