package parser

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Every declaration of the bundled example sources must print as source
// that parses back to the same text.
func TestExamplesRoundTrip(t *testing.T) {
	var files []string
	err := filepath.WalkDir("../../examples", func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && filepath.Ext(path) == ".idk" {
			files = append(files, path)
		}
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no example sources found")
	}

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			fh, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer fh.Close()

			f, err := ParseFile(path, fh)
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			if len(f.Decls) == 0 {
				t.Fatal("no declarations")
			}
			for i, d := range f.Decls {
				printed := d.String()
				again, err := ParseDecl(strings.NewReader(printed))
				if err != nil {
					t.Fatalf("decls[%d] - reparsing %q: %v", i, printed, err)
				}
				if again.String() != printed {
					t.Fatalf("decls[%d] - not stable.\nfirst=%q\nsecond=%q", i, printed, again.String())
				}
			}
		})
	}
}
