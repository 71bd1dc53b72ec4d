package hydrate

import "testing"

func TestParseTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want tagOptions
	}{
		{
			name: "empty tag",
			tag:  "",
			want: tagOptions{},
		},
		{
			name: "dash shorthand",
			tag:  "-",
			want: tagOptions{ignore: true},
		},
		{
			name: "name directive",
			tag:  "name:fullName",
			want: tagOptions{name: "fullName"},
		},
		{
			name: "ignore directive",
			tag:  "ignore",
			want: tagOptions{ignore: true},
		},
		{
			name: "combined directives",
			tag:  "name:fullName,ignore",
			want: tagOptions{name: "fullName", ignore: true},
		},
		{
			name: "whitespace tolerated",
			tag:  " name:fullName , ignore ",
			want: tagOptions{name: "fullName", ignore: true},
		},
		{
			name: "unknown directives skipped",
			tag:  "required,name:x",
			want: tagOptions{name: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTag(tt.tag)
			if got != tt.want {
				t.Errorf("parseTag(%q) = %+v, want %+v", tt.tag, got, tt.want)
			}
		})
	}
}
