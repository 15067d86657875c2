// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestIdentCommand(t *testing.T) {
	out, err := execute(t, "", "ident",
		"http://link.example.org/resource/abc123/",
		"http://link.example.org/portal/Title/abc123/borrow/")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "link.example.org abc123\thttp://link.example.org/resource/abc123/", lines[0])
	assert.Equal(t, "link.example.org abc123\thttp://link.example.org/portal/Title/abc123/", lines[1])
}

func TestIdentCommandInvalid(t *testing.T) {
	out, err := execute(t, "", "ident", "http://example.com/page")
	require.Error(t, err)
	assert.Contains(t, out, "invalid:")
	assert.Contains(t, out, "http://example.com/page")
}

func TestDedupCommand(t *testing.T) {
	input := strings.Join([]string{
		"# one item as resource, view, query and portal forms",
		"http://link.example.org/resource/abc123/",
		"http://link.example.org/resource/abc123/borrow/?q=1",
		"http://link.example.org/portal/Title/abc123/borrow/",
		"",
		"http://link.example.org/resource/def456/",
		"http://example.com/page",
		"http://example.com/page",
	}, "\n")

	out, err := execute(t, input, "dedup")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"http://example.com/page",
		"http://link.example.org/resource/abc123/",
		"http://link.example.org/resource/def456/",
	}, "\n")+"\n", out)
}

func TestReadURLSet(t *testing.T) {
	set, read, err := readURLSet(strings.NewReader("a\n\n  a  \n# skip\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, read)
	assert.Equal(t, 2, set.Len())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "liblink dev\n", out)
}

func TestWriteOutput(t *testing.T) {
	v := []siteOutput{{URL: "http://h/"}}

	tests := []struct {
		format string
		want   string
	}{
		{"yaml", "- url: http://h/\n  record: null\n"},
		{"", "- url: http://h/\n  record: null\n"},
		{"JSON", "[\n  {\n    \"url\": \"http://h/\",\n    \"record\": null\n  }\n]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeOutput(&buf, tt.format, v))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	err := writeOutput(&bytes.Buffer{}, "xml", v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
