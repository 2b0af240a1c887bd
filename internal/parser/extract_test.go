package parser

import "testing"

func TestExtractNameAndPrefix(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantName     string
		wantPrefix   string
		wantBranched bool
	}{
		{name: "inline comment stripped", line: "├── foo.txt  # comment", wantName: "foo.txt", wantPrefix: "├", wantBranched: true},
		{name: "nested last child", line: "│   └── main.txt", wantName: "main.txt", wantPrefix: "│   └", wantBranched: true},
		{name: "root line", line: "root/", wantName: "root/", wantPrefix: ""},
		{name: "space indented", line: "    src/", wantName: "src/", wantPrefix: "    "},
		{name: "tab indented", line: "\t\tnested.txt", wantName: "nested.txt", wantPrefix: "\t\t"},
		{name: "ascii branch", line: "|   |-- b.go", wantName: "b.go", wantPrefix: "|   ", wantBranched: true},
		{name: "ascii last child", line: "`-- c", wantName: "c", wantPrefix: "", wantBranched: true},
		{name: "ascii plus", line: "+--- d.txt", wantName: "d.txt", wantPrefix: "", wantBranched: true},
		{name: "quoted name", line: `├── "my file.txt"`, wantName: "my file.txt", wantPrefix: "├", wantBranched: true},
		{name: "single quoted name", line: "└── 'notes.md'", wantName: "notes.md", wantPrefix: "└", wantBranched: true},
		{name: "last connector wins", line: "├── a ── b", wantName: "b", wantPrefix: "├── a ", wantBranched: true},
		{name: "connector without name", line: "├──", wantName: "", wantPrefix: "├──"},
		{name: "connector followed by blanks", line: "└──   ", wantName: "", wantPrefix: "└──   "},
		{name: "comment only after connector", line: "├── # nothing", wantName: "# nothing", wantPrefix: "├", wantBranched: true},
		{name: "non breaking spaces", line: "│\u00a0\u00a0\u00a0└── x.go", wantName: "x.go", wantPrefix: "│\u00a0\u00a0\u00a0└", wantBranched: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, prefix, branched := ExtractNameAndPrefix(tt.line)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if prefix != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", prefix, tt.wantPrefix)
			}
			if branched != tt.wantBranched {
				t.Errorf("branched = %v, want %v", branched, tt.wantBranched)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "foo.txt  # comment", want: "foo.txt"},
		{in: "  spaced  ", want: "spaced"},
		{in: "a#b", want: "a#b"},
		{in: `"quoted" # note`, want: "quoted"},
		{in: `" padded "`, want: "padded"},
		{in: "'single'", want: "single"},
		{in: `"mismatched'`, want: `"mismatched'`},
		{in: `"`, want: ""},
		{in: `""`, want: ""},
		{in: "src/\t# sources", want: "src/"},
	}

	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
