package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"polyglot-tts/internal/config"
	"polyglot-tts/internal/registry"
	"polyglot-tts/internal/tts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	resp      tts.Response
	lastVoice string
}

func (f *fakeProvider) ID() string           { return "fake" }
func (f *fakeProvider) FriendlyName() string { return "가짜" }
func (f *fakeProvider) Voices() []tts.Voice {
	return []tts.Voice{{ID: "first", Name: "First", Language: "ko-KR"}, {ID: "second", Name: "Second", Language: "en-US"}}
}
func (f *fakeProvider) Synthesize(_ context.Context, voice, _ string) tts.Response {
	f.lastVoice = voice
	return f.resp
}

func TestRun_WritesAudio(t *testing.T) {
	p := &fakeProvider{resp: tts.NewAudio(tts.FormatOGG, []byte("OggS"))}
	reg, err := registry.New(p)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.ogg")
	err = run(context.Background(), reg, options{provider: "fake", text: "안녕", out: out}, zap.NewNop())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "OggS", string(data))
	assert.Equal(t, "first", p.lastVoice)
}

func TestRun_Failure(t *testing.T) {
	reg, err := registry.New(&fakeProvider{resp: tts.NewFailure("403 Forbidden: bad key")})
	require.NoError(t, err)

	err = run(context.Background(), reg, options{provider: "fake", voice: "second", text: "t", out: filepath.Join(t.TempDir(), "x.ogg")}, zap.NewNop())
	assert.EqualError(t, err, "403 Forbidden: bad key")
}

func TestRun_Validation(t *testing.T) {
	reg, err := registry.New(&fakeProvider{})
	require.NoError(t, err)

	assert.Error(t, run(context.Background(), reg, options{provider: "fake"}, zap.NewNop()))
	assert.ErrorIs(t, run(context.Background(), reg, options{provider: "naver", text: "t"}, zap.NewNop()), registry.ErrUnknownProvider)
}

func TestPrintCatalog(t *testing.T) {
	reg, err := registry.New(&fakeProvider{})
	require.NoError(t, err)

	var buf bytes.Buffer
	printCatalog(&buf, reg)

	assert.Equal(t, "fake\t가짜\n\tfirst\tFirst\tko-KR\n\tsecond\tSecond\ten-US\n", buf.String())
}

func TestMigrateStatus(t *testing.T) {
	t.Run("без БД", func(t *testing.T) {
		called := false
		err := migrateStatus(&config.DatabaseConfig{}, zap.NewNop(), func(*config.DatabaseConfig, *zap.Logger) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, errNoDatabase)
		assert.False(t, called)
	})

	t.Run("с БД", func(t *testing.T) {
		cfg := &config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Name: "db"}
		var got *config.DatabaseConfig
		err := migrateStatus(cfg, zap.NewNop(), func(c *config.DatabaseConfig, _ *zap.Logger) error {
			got = c
			return nil
		})
		require.NoError(t, err)
		assert.Same(t, cfg, got)
	})
}
