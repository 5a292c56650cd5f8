package llm

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "bare json untouched",
			reply: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "trims surrounding whitespace",
			reply: "\n  {\"a\": 1}\n",
			want:  `{"a": 1}`,
		},
		{
			name:  "json fence",
			reply: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "anonymous fence",
			reply: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "fence with trailing chatter",
			reply: "```json\n{\"a\": 1}\n```\nHope this helps!",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested braces survive",
			reply: "```json\n{\"a\": {\"b\": 2}}\n```",
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "fence without object returned as-is",
			reply: "```\nnot json\n```",
			want:  "```\nnot json\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.reply); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.reply, got, tt.want)
			}
		})
	}
}

func TestValidatePayload(t *testing.T) {
	schema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"amount": map[string]any{"type": []any{"number", "null"}},
			"name":   map[string]any{"type": "string"},
		},
	}

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "conformant", data: `{"amount": 12.5, "name": "Widget"}`},
		{name: "null amount allowed", data: `{"amount": null}`},
		{name: "string amount rejected", data: `{"amount": "12,5"}`, wantErr: true},
		{name: "unknown key rejected", data: `{"surprise": true}`, wantErr: true},
		{name: "not json", data: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(schema, []byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePayload(%s) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
		})
	}
}
