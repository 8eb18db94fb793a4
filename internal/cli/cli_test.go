package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/paratym/idk/internal/config"
	"github.com/paratym/idk/internal/lexer"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintVersion(&buf, "idk", false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "idk v"+Version+"\n") {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Language: "+lexer.LanguageVersion) {
		t.Fatalf("language version missing from %q", buf.String())
	}

	buf.Reset()
	if err := PrintVersion(&buf, "idk", true); err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["tool"] != "idk" || got["version"] != Version || got["language"] != lexer.LanguageVersion {
		t.Fatalf("unexpected json %v", got)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg     config.LogConfig
		verbose bool
		debug   bool
		json    bool
		wantErr bool
	}{
		{config.LogConfig{Level: "info", Format: "text"}, false, false, false, false},
		{config.LogConfig{Level: "info", Format: "text"}, true, true, false, false},
		{config.LogConfig{Level: "debug", Format: "json"}, false, true, true, false},
		{config.LogConfig{Level: "loud", Format: "text"}, false, false, false, true},
		{config.LogConfig{Level: "info", Format: "xml"}, false, false, false, true},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, tt.cfg, tt.verbose)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("tests[%d] - expected an error", i)
			}
			continue
		}
		if err != nil {
			t.Fatalf("tests[%d] - %v", i, err)
		}
		logger.Debug("probe")
		if got := buf.Len() > 0; got != tt.debug {
			t.Fatalf("tests[%d] - debug record written=%t, expected %t", i, got, tt.debug)
		}
		if tt.json && !strings.HasPrefix(buf.String(), "{") {
			t.Fatalf("tests[%d] - expected json, got %q", i, buf.String())
		}
	}
}
