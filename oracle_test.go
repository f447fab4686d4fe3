package gitglob_test

import (
	"strings"
	"testing"

	gogitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"

	gitglob "github.com/Sriram-PR/go-gitglob"
)

// TestOracleGoGit cross-checks Matcher verdicts against the go-git ignore
// engine over rule sets both engines interpret the same way. Vectors steer
// clear of each engine's known departures: go-git's matcher has no
// cannot-re-include-below-excluded-directory rule, does not propagate a
// matched directory to its contents for slash-bearing patterns, treats
// "x/**" as matching x itself, and rejects [!...] class negation, while this
// package lets ** cross directories anywhere in a pattern.
func TestOracleGoGit(t *testing.T) {
	type vector struct {
		path  string
		isDir bool
		want  bool
	}
	tests := []struct {
		name    string
		rules   []string
		vectors []vector
	}{
		{
			name:  "basenames with negation",
			rules: []string{"*.log", "!important.log", "*.tmp"},
			vectors: []vector{
				{"debug.log", false, true},
				{"important.log", false, false},
				{"important.log", true, false},
				{"x/important.log", false, false},
				{"logs/debug.log", false, true},
				{"a/b/c.tmp", false, true},
				{"main.go", false, false},
			},
		},
		{
			name:  "anchored rules",
			rules: []string{"/build", "doc/*.txt", "src/*/gen"},
			vectors: []vector{
				{"build", false, true},
				{"x/build", false, false},
				{"doc/a.txt", false, true},
				{"doc/sub/a.txt", false, false},
				{"src/a/gen", false, true},
				{"src/a/gen", true, true},
				{"src/a/b/gen", false, false},
			},
		},
		{
			name:  "double star",
			rules: []string{"**/node_modules", "dist/**", "a/**/b"},
			vectors: []vector{
				{"node_modules", false, true},
				{"x/node_modules", false, true},
				{"dist/a/b.js", false, true},
				{"a/b", false, true},
				{"a/x/y/b", false, true},
				{"a/x/c", false, false},
			},
		},
		{
			name:  "directory-only and classes",
			rules: []string{"logs/", "[abc]?.txt", "file[0-9].dat"},
			vectors: []vector{
				{"logs", true, true},
				{"logs", false, false},
				{"x/logs/file.txt", false, true},
				{"ab.txt", false, true},
				{"a5.txt", false, true},
				{"zb.txt", false, false},
				{"file5.dat", false, true},
				{"filex.dat", false, false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := gitglob.New()
			if warns := m.AddPatterns("", []byte(strings.Join(tt.rules, "\n"))); len(warns) != 0 {
				t.Fatalf("AddPatterns warnings: %v", warns)
			}

			ps := make([]gogitignore.Pattern, 0, len(tt.rules))
			for _, rule := range tt.rules {
				ps = append(ps, gogitignore.ParsePattern(rule, nil))
			}
			oracle := gogitignore.NewMatcher(ps)

			for _, v := range tt.vectors {
				got := m.Match(v.path, v.isDir)
				if got != v.want {
					t.Errorf("Match(%q, isDir=%v) = %v, want %v", v.path, v.isDir, got, v.want)
				}
				theirs := oracle.Match(strings.Split(v.path, "/"), v.isDir)
				if theirs != v.want {
					t.Errorf("go-git oracle disagrees on (%q, isDir=%v): got %v, want %v; vector outside the shared subset?",
						v.path, v.isDir, theirs, v.want)
				}
			}
		})
	}
}
