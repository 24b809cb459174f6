package keyboard

import "testing"

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data       string
		wantAction string
		wantValue  string
		wantErr    bool
	}{
		{data: "choice:A", wantAction: "choice", wantValue: "A"},
		{data: "dl:docx", wantAction: "dl", wantValue: "docx"},
		{data: "action:start", wantAction: "action", wantValue: "start"},
		{data: "confirm:restart", wantAction: "confirm", wantValue: "restart"},
		{data: "noseparator", wantErr: true},
		{data: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := ParseCallback(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCallback(%q) succeeded, want error", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCallback(%q) error = %v", tt.data, err)
			}
			if got.Action != tt.wantAction || got.Value != tt.wantValue {
				t.Errorf("ParseCallback(%q) = %+v", tt.data, got)
			}
		})
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	encoded := EncodeCallback(ActionChoice, "B")

	got, err := ParseCallback(encoded)
	if err != nil {
		t.Fatalf("ParseCallback() error = %v", err)
	}
	if got.Action != ActionChoice || got.Value != "B" {
		t.Errorf("round trip = %+v", got)
	}
}
