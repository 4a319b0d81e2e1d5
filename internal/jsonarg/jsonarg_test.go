package jsonarg

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "structured_object",
			raw:  `{"tone":"encouraging"}`,
			want: `{"tone":"encouraging"}`,
		},
		{
			name: "structured_array",
			raw:  `[{"title":"Chords"}]`,
			want: `[{"title":"Chords"}]`,
		},
		{
			name: "string_wrapped_object",
			raw:  `"{\"tone\":\"concise\"}"`,
			want: `{"tone":"concise"}`,
		},
		{
			name: "string_wrapped_array",
			raw:  `"[{\"title\":\"Songs\"}]"`,
			want: `[{"title":"Songs"}]`,
		},
		{
			name:    "string_wrapped_garbage",
			raw:     `"not json at all"`,
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     ``,
			wantErr: true,
		},
		{
			name:    "empty_string",
			raw:     `""`,
			wantErr: true,
		},
		{
			name:    "truncated_object",
			raw:     `{"tone":`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(json.RawMessage(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q): expected error, got %q", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tc.raw, err)
			}
			if string(got) != tc.want {
				t.Fatalf("Normalize(%q)=%q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	type entry struct {
		Title string `json:"title"`
	}

	var structured []entry
	if err := Decode(json.RawMessage(`[{"title":"Chords"},{"title":"Songs"}]`), &structured); err != nil {
		t.Fatalf("Decode structured: %v", err)
	}
	if len(structured) != 2 || structured[0].Title != "Chords" {
		t.Fatalf("Decode structured: unexpected result %+v", structured)
	}

	var wrapped []entry
	if err := Decode(json.RawMessage(`"[{\"title\":\"Chords\"}]"`), &wrapped); err != nil {
		t.Fatalf("Decode wrapped: %v", err)
	}
	if len(wrapped) != 1 || wrapped[0].Title != "Chords" {
		t.Fatalf("Decode wrapped: unexpected result %+v", wrapped)
	}

	var bad []entry
	if err := Decode(json.RawMessage(`"oops"`), &bad); err == nil {
		t.Fatalf("Decode garbage: expected error")
	}
}
