package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"hiper-bot/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testKnowledge = `{
  "transportadoras": [
    {"transportadora": {"nome": "JADLOG", "prazo_entrega": {"completions": "5 dias úteis"}}}
  ],
  "sistemas": [
    {"sistema": {"Protheus": {"emitir nf": {"completions": "Faturamento > Documento de Saída"}}}}
  ]
}`

func writeKnowledge(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db_process.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		knowledgePath = ""
		askVerbose = false
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAskCommand(t *testing.T) {
	path := writeKnowledge(t, testKnowledge)

	out, _, err := execute(t, "--knowledge", path, "ask", "Qual", "o", "prazo", "da", "Jadlog?")
	require.NoError(t, err)
	assert.Equal(t, "5 dias úteis\n", out)
}

func TestAskCommand_Verbose(t *testing.T) {
	path := writeKnowledge(t, testKnowledge)

	out, _, err := execute(t, "--knowledge", path, "ask", "--verbose", "como emitir nf")
	require.NoError(t, err)
	assert.Contains(t, out, "keywords: emitir nf, nf, emitir")
	assert.Contains(t, out, "outcome: fallback")
	assert.Contains(t, out, "source: Protheus / emitir nf")
	assert.Contains(t, out, "Faturamento > Documento de Saída")
}

func TestAskCommand_InvalidKnowledge(t *testing.T) {
	path := writeKnowledge(t, `{"transportadoras": {}}`)

	_, _, err := execute(t, "--knowledge", path, "ask", "prazo")
	assert.Error(t, err)
}

func TestAskCommand_MissingKnowledge(t *testing.T) {
	_, _, err := execute(t, "--knowledge", filepath.Join(t.TempDir(), "missing.json"), "ask", "prazo")
	assert.Error(t, err)
}

func TestCheckCommand_MissingCredential(t *testing.T) {
	t.Setenv("COHERE_API_KEY", "")
	path := writeKnowledge(t, testKnowledge)

	out, errOut, err := execute(t, "--knowledge", path, "check", "--question", "prazo?", "--answer", "5 dias")
	require.NoError(t, err)
	assert.Equal(t, "não\n", out)
	assert.Contains(t, errOut, "COHERE_API_KEY")
}

func TestWarnDefaultSecret(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	appLogger := zap.New(core)

	warnDefaultSecret(&config.Config{JWT: config.JWTConfig{SecretKey: config.DefaultJWTSecret}}, appLogger)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "JWT_SECRET_KEY")

	warnDefaultSecret(&config.Config{JWT: config.JWTConfig{SecretKey: "prod-secret"}}, appLogger)
	assert.Equal(t, 1, logs.Len())
}
