package tts

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAudio(t *testing.T) {
	data := []byte{0x4f, 0x67, 0x67, 0x53}
	var resp Response = NewAudio(FormatOGG, data)

	audio, ok := resp.(*Audio)
	require.True(t, ok)
	assert.Equal(t, FormatOGG, audio.Format)
	assert.Equal(t, data, audio.Data)
	assert.Equal(t, "ogg", audio.Format.String())
}

func TestFailureFromError(t *testing.T) {
	f := FailureFromError(errors.New("соединение разорвано"))

	assert.Equal(t, "соединение разорвано", f.Message)
	assert.NotEmpty(t, f.Trace)
	assert.Equal(t, f.Message, f.Error())
}

func TestStatusFailure(t *testing.T) {
	t.Run("без детали вендора", func(t *testing.T) {
		f := StatusFailure(http.StatusInternalServerError, []byte("  boom \n"), "")
		assert.Equal(t, "500 Internal Server Error: boom", f.Message)
		assert.Empty(t, f.Trace)
	})

	t.Run("с деталью вендора", func(t *testing.T) {
		body := []byte(`{"error":{"message":"bad voice"}}`)
		f := StatusFailure(http.StatusBadRequest, body, "bad voice")
		assert.Equal(t, "400 Bad Request: bad voice", f.Message)
		assert.Equal(t, string(body), f.Trace)
	})
}

func TestRequireCredential(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "пустое значение", value: "", wantErr: true},
		{name: "только пробелы", value: " \t\n", wantErr: true},
		{name: "заданный ключ", value: "key", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireCredential("aws", "access key id", tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingCredential)

			var credErr *CredentialError
			require.ErrorAs(t, err, &credErr)
			assert.Equal(t, "aws", credErr.Provider)
			assert.Equal(t, "access key id", credErr.Name)
		})
	}
}

type stubProvider struct {
	voices []Voice
}

func (s *stubProvider) ID() string           { return "stub" }
func (s *stubProvider) FriendlyName() string { return "Stub" }
func (s *stubProvider) Voices() []Voice      { return CopyVoices(s.voices) }
func (s *stubProvider) Synthesize(context.Context, string, string) Response {
	return NewFailure("not implemented")
}

func TestFindVoice(t *testing.T) {
	p := &stubProvider{voices: []Voice{
		{ID: "a", Name: "A", Language: "ko-KR"},
		{ID: "b", Name: "B", Language: "en-US"},
	}}

	v, ok := FindVoice(p, "b")
	assert.True(t, ok)
	assert.Equal(t, "en-US", v.Language)

	_, ok = FindVoice(p, "missing")
	assert.False(t, ok)
}

func TestCopyVoices(t *testing.T) {
	catalog := []Voice{{ID: "a"}, {ID: "b"}}
	out := CopyVoices(catalog)
	out[0].ID = "changed"

	assert.Equal(t, "a", catalog[0].ID)
	assert.Len(t, out, 2)
}
