package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `source:
  type: snapshot
  snapshot:
    location: %q
    pattern: "%%s.json"
tables:
  - id: CATEGORIES
    name: Categories
    searchable_fields: [Name]
  - id: PRODUCTS
    name: Products
    searchable_fields: [Name]
relationships:
  - from: PRODUCTS
    from_field: CategoryID
    to: CATEGORIES
    to_field: CategoryID
logging:
  level: error
  format: text
  output: stderr
`

var testSnapshots = map[string]string{
	"CATEGORIES": `{"features":[
		{"attributes":{"OBJECTID":1,"CategoryID":10,"Name":"Beverages"}},
		{"attributes":{"OBJECTID":2,"CategoryID":20,"Name":"Condiments"}},
		{"attributes":{"OBJECTID":3,"CategoryID":30,"Name":"Unused"}}]}`,
	"PRODUCTS": `[
		{"OBJECTID":1,"Name":"Chai","CategoryID":10},
		{"OBJECTID":2,"Name":"Chang","CategoryID":10},
		{"OBJECTID":3,"Name":"Aniseed Syrup","CategoryID":20},
		{"OBJECTID":4,"Name":"Lonely","CategoryID":99}]`,
}

// writeFixture writes snapshots and a config file into a temp dir and
// returns the config path.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range testSnapshots {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(body), 0o644))
	}
	path := filepath.Join(dir, "gorelate.yaml")
	cfg := []byte(fmt.Sprintf(testConfig, dir))
	require.NoError(t, os.WriteFile(path, cfg, 0o644))
	return path
}

// executeCommand runs the root command with args and returns what the
// command wrote to the output writer.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	cfgFile = "gorelate.yaml"
	logLevel = ""
	logFormat = ""
	outputFormat = "text"
	noColor = false
	strictLoad = false
	allowLoopback = false
	bidirectional = false
	traceSeeds = nil
	traceSearch = ""
	traceTable = ""
	traceWhere = nil
	traceDisable = nil
	validateSource = false
}

func TestCommandsAreAddedToRoot(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"trace", "orphans", "search", "schema", "validate", "version"} {
		assert.True(t, names[want], "%s command should be added to root command", want)
	}
}

func TestCommandStructure(t *testing.T) {
	for _, c := range []struct {
		use  string
		long string
	}{
		{"trace", traceCmd.Long},
		{"orphans", orphansCmd.Long},
		{"search WORDS...", searchCmd.Long},
		{"schema", schemaCmd.Long},
		{"validate", validateCmd.Long},
	} {
		t.Run(c.use, func(t *testing.T) {
			assert.Contains(t, c.long, "Example:")
			assert.Contains(t, c.long, "gorelate ")
		})
	}
}

func TestTraceCommandFlags(t *testing.T) {
	flags := traceCmd.Flags()

	seed := flags.Lookup("seed")
	require.NotNil(t, seed)
	assert.Equal(t, "s", seed.Shorthand)

	disable := flags.Lookup("disable")
	require.NotNil(t, disable)
	assert.Equal(t, "d", disable.Shorthand)
	assert.Equal(t, "[]", disable.DefValue)

	for _, name := range []string{"search", "table", "where", "loopback", "bidirectional"} {
		assert.NotNil(t, flags.Lookup(name), "missing flag %s", name)
	}

	output := rootCmd.PersistentFlags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "text", output.DefValue)
}

func TestGetCLIOverrides(t *testing.T) {
	t.Cleanup(resetFlags)

	logLevel = "debug"
	logFormat = "json"
	allowLoopback = true
	bidirectional = false

	assert.Equal(t, CLIOverrides{
		LogLevel:      "debug",
		LogFormat:     "json",
		AllowLoopback: true,
	}, GetCLIOverrides())
}

func TestTraceBySeed(t *testing.T) {
	path := writeFixture(t)

	out, err := executeCommand(t, "trace", "-c", path, "--seed", "PRODUCTS=1", "-o", "json")
	require.NoError(t, err)

	var view struct {
		Seeds []struct {
			Table string `json:"table"`
			Key   string `json:"key"`
		} `json:"seeds"`
		Relationships []struct {
			Index  int  `json:"index"`
			Active bool `json:"active"`
		} `json:"relationships"`
		Tables []struct {
			ID    string `json:"id"`
			Seed  bool   `json:"seed"`
			Count int    `json:"count"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))

	require.Len(t, view.Seeds, 1)
	assert.Equal(t, "PRODUCTS", view.Seeds[0].Table)
	assert.Equal(t, "1", view.Seeds[0].Key)

	require.Len(t, view.Relationships, 1)
	assert.Equal(t, 0, view.Relationships[0].Index)
	assert.True(t, view.Relationships[0].Active)

	require.Len(t, view.Tables, 2)
	assert.Equal(t, "CATEGORIES", view.Tables[0].ID)
	assert.Equal(t, 1, view.Tables[0].Count)
	assert.False(t, view.Tables[0].Seed)
	assert.Equal(t, "PRODUCTS", view.Tables[1].ID)
	assert.True(t, view.Tables[1].Seed)
}

func TestTraceWithDisabledRelationship(t *testing.T) {
	path := writeFixture(t)

	out, err := executeCommand(t, "trace", "-c", path, "--seed", "PRODUCTS=1", "--disable", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "[ ] #0 Products.CategoryID -> Categories.CategoryID")
	assert.Contains(t, out, "Products: 1 record(s) (seed)")
	assert.NotContains(t, out, "Categories: ")
}

func TestTraceMermaid(t *testing.T) {
	path := writeFixture(t)

	out, err := executeCommand(t, "trace", "-c", path, "--table", "CATEGORIES", "--where", "CategoryID=10",
		"--bidirectional", "--loopback", "-o", "mermaid")
	require.NoError(t, err)

	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `PRODUCTS["Products (2 records)"]`)
	assert.Contains(t, out, "style CATEGORIES")
}

func TestTraceErrors(t *testing.T) {
	path := writeFixture(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no seed flags",
			args:    []string{"trace", "-c", path},
			wantErr: "no records selected to trace",
		},
		{
			name:    "search without hits",
			args:    []string{"trace", "-c", path, "--search", "nothing here"},
			wantErr: "no records selected to trace",
		},
		{
			name:    "unknown key",
			args:    []string{"trace", "-c", path, "--seed", "PRODUCTS=42"},
			wantErr: "no record in PRODUCTS",
		},
		{
			name:    "unknown table",
			args:    []string{"trace", "-c", path, "--seed", "ORDERS=1"},
			wantErr: "unknown table",
		},
		{
			name:    "disable out of range",
			args:    []string{"trace", "-c", path, "--seed", "PRODUCTS=1", "--disable", "3"},
			wantErr: "relationship index 3 out of range",
		},
		{
			name:    "where without table",
			args:    []string{"trace", "-c", path, "--where", "Name=Chai"},
			wantErr: "--where requires --table",
		},
		{
			name:    "bad output format",
			args:    []string{"trace", "-c", path, "--seed", "PRODUCTS=1", "-o", "xml"},
			wantErr: "xml",
		},
		{
			name:    "missing config",
			args:    []string{"trace", "-c", filepath.Join(t.TempDir(), "missing.yaml"), "--seed", "PRODUCTS=1"},
			wantErr: "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOrphansCommand(t *testing.T) {
	path := writeFixture(t)

	out, err := executeCommand(t, "orphans", "-c", path, "-o", "json")
	require.NoError(t, err)

	var view struct {
		Total      int `json:"total"`
		TableCount int `json:"table_count"`
		Tables     []struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, 2, view.TableCount)
	require.Len(t, view.Tables, 2)
	assert.Equal(t, "CATEGORIES", view.Tables[0].ID)
	assert.Equal(t, "PRODUCTS", view.Tables[1].ID)

	_, err = executeCommand(t, "orphans", "-c", path, "-o", "mermaid")
	assert.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	path := writeFixture(t)

	out, err := executeCommand(t, "search", "-c", path, "-o", "yaml", "CHA")
	require.NoError(t, err)
	assert.Contains(t, out, "query: CHA")
	assert.Contains(t, out, "value: Chai")
	assert.Contains(t, out, "value: Chang")

	_, err = executeCommand(t, "search", "-c", path)
	assert.Error(t, err)
}

func TestSchemaCommand(t *testing.T) {
	path := writeFixture(t)

	out, err := executeCommand(t, "schema", "-c", path, "-o", "mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "PRODUCTS -->")
}

func TestValidateCommand(t *testing.T) {
	path := writeFixture(t)

	out, err := executeCommand(t, "validate", "-c", path, "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "Tables: 2")
	assert.Contains(t, out, "Relationships: 1")
	assert.Contains(t, out, "PRODUCTS")
	assert.Contains(t, out, "Configuration is valid")
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gorelate version "+Version)
}
