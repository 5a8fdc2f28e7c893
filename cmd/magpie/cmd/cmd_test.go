package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/heliobs/magpie"
	"github.com/heliobs/magpie/internal/cmd/globals"
	"github.com/heliobs/magpie/pkg/photometry"
	"github.com/heliobs/magpie/pkg/target"
)

// fakeApp records which client path commands take.
type fakeApp struct {
	clientCalls int
	optionCalls [][]magpie.Option
}

func (f *fakeApp) Client() (magpie.Client, error) {
	f.clientCalls++
	return nil, nil
}

func (f *fakeApp) ClientWithOptions(opts ...magpie.Option) (magpie.Client, error) {
	f.optionCalls = append(f.optionCalls, opts)
	return nil, nil
}

func (f *fakeApp) Logger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func (f *fakeApp) Version() string { return "test" }
func (f *fakeApp) Commit() string  { return "none" }
func (f *fakeApp) Date() string    { return "unknown" }
func (f *fakeApp) BuiltBy() string { return "test" }

func sampleResult() *magpie.Result {
	return &magpie.Result{
		Target:   target.New("HD 42777", 91.784, 23.911).WithGaiaID(3376241909848155520),
		SourceID: 3376241909848155520,
		Params: target.StellarParams{
			Parallax: target.NewParam(2.347, 0.096),
		},
		Photometry: []photometry.Measurement{
			{Band: photometry.TwoMASSH, Mag: 8.742, Err: 0.021, Source: "2MASS"},
			{Band: photometry.GaiaG, Mag: 10.0412, Err: 0.0005, Source: "Gaia"},
		},
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := exportCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("exportCSV() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("exportCSV() wrote %d lines, want 3 (header + 2 rows)", len(lines))
	}
	if lines[0] != "index,band,mag,mag_err,source" {
		t.Errorf("exportCSV() header = %q", lines[0])
	}
	if lines[1] != "0,2MASS_H,8.742,0.021,2MASS" {
		t.Errorf("exportCSV() first row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "6,GaiaDR2v2_G,") {
		t.Errorf("exportCSV() second row = %q, want Gaia G at index 6", lines[2])
	}
}

func TestExportResult_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := exportResult(&buf, sampleResult(), "parquet"); err == nil {
		t.Error("exportResult() accepted an unsupported format")
	}
}

func TestRenderLookup(t *testing.T) {
	var buf bytes.Buffer
	if err := renderLookup(&buf, sampleResult(), false); err != nil {
		t.Fatalf("renderLookup() failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Target: HD 42777",
		"Stellar parameters:",
		"Photometry (2 bands):",
		"2MASS_H",
		"GaiaDR2v2_G",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderLookup() output missing %q", want)
		}
	}
}

func TestLookupClient_FlagMapping(t *testing.T) {
	tests := []struct {
		name      string
		flags     *globals.LookupFlags
		wantOwned bool
		wantOpts  int
	}{
		{
			name:      "no overrides uses shared client",
			flags:     &globals.LookupFlags{},
			wantOwned: false,
		},
		{
			name:      "radius forces dedicated client",
			flags:     &globals.LookupFlags{Radius: 30},
			wantOwned: true,
			wantOpts:  1,
		},
		{
			name:      "cache and photometry flags combine",
			flags:     &globals.LookupFlags{NoCache: true, NoPhotometry: true},
			wantOwned: true,
			wantOpts:  2,
		},
		{
			name:      "all overrides",
			flags:     &globals.LookupFlags{Radius: 30, Timeout: 1, NoCache: true, CachePath: "/tmp/x.db", NoPhotometry: true},
			wantOwned: true,
			wantOpts:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &fakeApp{}
			_, owned, err := lookupClient(app, tt.flags)
			if err != nil {
				t.Fatalf("lookupClient() failed: %v", err)
			}
			if owned != tt.wantOwned {
				t.Errorf("lookupClient() owned = %v, want %v", owned, tt.wantOwned)
			}
			if tt.wantOwned {
				if len(app.optionCalls) != 1 {
					t.Fatalf("ClientWithOptions called %d times, want 1", len(app.optionCalls))
				}
				if len(app.optionCalls[0]) != tt.wantOpts {
					t.Errorf("ClientWithOptions got %d options, want %d", len(app.optionCalls[0]), tt.wantOpts)
				}
			} else if app.clientCalls != 1 {
				t.Errorf("Client called %d times, want 1", app.clientCalls)
			}
		})
	}
}

func TestNewLookupCommand_Flags(t *testing.T) {
	cmd := NewLookupCommand(&fakeApp{})

	for _, name := range []string{"ra", "dec", "gaia-id", "radius", "no-photometry", "no-cache", "cache-path", "timeout", "export"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("lookup command missing --%s flag", name)
		}
	}
	if cmd.Use != "lookup <name>" {
		t.Errorf("Use = %q", cmd.Use)
	}
}

func TestParseServerConfig(t *testing.T) {
	cmd := NewServeCommand(&fakeApp{})

	if err := cmd.Flags().Set("port", "3000"); err != nil {
		t.Fatalf("setting port flag: %v", err)
	}
	if err := cmd.Flags().Set("cors-origins", "https://example.com"); err != nil {
		t.Fatalf("setting cors-origins flag: %v", err)
	}

	cfg := parseServerConfig(cmd)
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if !cfg.CORSEnabled {
		t.Error("CORSEnabled = false, want true when origins are given")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "valid", input: "8080", want: 8080},
		{name: "not a number", input: "eighty", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "too large", input: "70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePort(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePort(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommandConstruction(t *testing.T) {
	app := &fakeApp{}

	for _, tt := range []struct {
		name string
		cmd  interface{ Name() string }
	}{
		{"bands", NewBandsCommand(app)},
		{"catalogs", NewCatalogsCommand(app)},
		{"serve", NewServeCommand(app)},
		{"version", NewVersionCommand(app)},
	} {
		if tt.cmd.Name() != tt.name {
			t.Errorf("command Name() = %q, want %q", tt.cmd.Name(), tt.name)
		}
	}
}
