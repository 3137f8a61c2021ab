package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, env map[string]string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	code := newRootCommand(&stdout, &stderr, lookup).execute(args)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCompileJSON(t *testing.T) {
	r := run(t, nil, "compile", "-o", "json", "a")
	require.Equal(t, 0, r.code, r.stderr)
	assert.JSONEq(t, `{"states":2,"start":0,"accepting":[1],
		"transitions":[{"from":0,"to":1,"symbol":"a"}]}`, r.stdout)
}

func TestCompileOutputFromEnv(t *testing.T) {
	r := run(t, map[string]string{"REGEXNFA_OUTPUT": "dot"}, "compile", "a|b")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "digraph NFA {")

	r = run(t, map[string]string{"REGEXNFA_OUTPUT": "dot"}, "compile", "--output=table", "a|b")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "STATE")
}

func TestCompileUnsupported(t *testing.T) {
	r := run(t, nil, "compile", "a{2,4}")
	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, `compile \"a{2,4}\"`)
	assert.Contains(t, r.stderr, "kind=\"unsupported ast\"")
}

func TestCompileParseError(t *testing.T) {
	r := run(t, nil, "--log-format", "json", "compile", "(a")
	assert.Equal(t, 1, r.code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stderr), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "parser error", entry["kind"])
	assert.Contains(t, entry["msg"], "regex parse error")
}

func TestCompileLimits(t *testing.T) {
	r := run(t, nil, "--max-pattern-length", "3", "compile", "abcd")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "pattern too long")

	r = run(t, map[string]string{"REGEXNFA_MAX_DEPTH": "2"}, "compile", "((a))")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "nested too deeply")

	r = run(t, nil, "--max-class-size", "2", "compile", "[a-c]")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "character classes too large")

	r = run(t, nil, "--max-class-size", "3", "compile", "[a-c]")
	assert.Equal(t, 0, r.code)
}

func TestMatch(t *testing.T) {
	r := run(t, nil, "match", "(a|b)*c", "abc", "ab")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"abc"`)
	assert.Contains(t, r.stdout, "true")
	assert.Contains(t, r.stdout, "false")

	r = run(t, nil, "match", "--strict", "(a|b)*c", "abc", "ab")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "1 of 2 inputs rejected")

	r = run(t, nil, "match", "--strict", "(a|b)*c", "abc", "c")
	assert.Equal(t, 0, r.code, r.stderr)
}

func TestDFA(t *testing.T) {
	r := run(t, nil, "dfa", "--minimize", "a|ab")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "digraph DFA {")
	assert.Contains(t, r.stdout, "q2 [shape=doublecircle];")
	assert.NotContains(t, r.stdout, "q3")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regexnfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\nlog_level: debug\n"), 0o600))

	r := run(t, nil, "--config", path, "compile", "a")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"states": 2`)
	assert.Contains(t, r.stderr, "configuration loaded")
}

func TestInvalidConfig(t *testing.T) {
	r := run(t, map[string]string{"REGEXNFA_LOG_FORMAT": "xml"}, "compile", "a")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid configuration")
}

func TestVerbose(t *testing.T) {
	r := run(t, nil, "-v", "compile", "a")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.stderr, "level=debug")
	assert.Contains(t, r.stderr, "translated")
}

func TestFind(t *testing.T) {
	r := run(t, nil, "find", "[a-c]+", "zabcxcc")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"abc"`)
	assert.Contains(t, r.stdout, `"cc"`)
}

func TestEquiv(t *testing.T) {
	r := run(t, nil, "equiv", "(a|b)*", "(a*b*)*")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "equivalent\n", r.stdout)

	r = run(t, nil, "equiv", "ab", "a")
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "different: \"a\"\n", r.stdout)
}
