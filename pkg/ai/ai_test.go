package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketresume/rocket/pkg/config"
)

func TestNopCompleteFails(t *testing.T) {
	_, err := Nop{}.Complete(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "none", Nop{}.Name())
}

func TestFromConfigNone(t *testing.T) {
	p, err := FromConfig(context.Background(), &config.RocketConfig{AIProvider: "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Name())

	p, err = FromConfig(context.Background(), &config.RocketConfig{})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Name())
}

func TestFromConfigMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := FromConfig(context.Background(), &config.RocketConfig{AIProvider: "openai"})
	assert.Error(t, err)

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	_, err = FromConfig(context.Background(), &config.RocketConfig{AIProvider: "gemini"})
	assert.Error(t, err)
}

func TestFromConfigUnknownProvider(t *testing.T) {
	_, err := FromConfig(context.Background(), &config.RocketConfig{AIProvider: "clippy"})
	assert.Error(t, err)
}

func TestOpenAIComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hello from the model"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAI("test-key", "gpt-4o-mini").WithBaseURL(server.URL)
	got, err := p.Complete(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", got)
	assert.Equal(t, "openai/gpt-4o-mini", p.Name())
}

func TestOpenAICompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	p := NewOpenAI("bad-key", "gpt-4o-mini").WithBaseURL(server.URL)
	_, err := p.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	p := NewOpenAI("k", "m").WithBaseURL(server.URL)
	_, err := p.Complete(context.Background(), "hi")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
		{"```json\n[1,2]\n```\n", `[1,2]`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanJSON(tc.in), "input %q", tc.in)
	}
}
