package sharelink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/sharecodec"
)

func TestParam(t *testing.T) {
	tests := []struct {
		name   string
		link   string
		want   string
		wantOK bool
	}{
		{name: "query", link: "https://app.example/?share=abc123def456", want: "abc123def456", wantOK: true},
		{name: "fragment", link: "https://app.example/#share=tok-en", want: "tok-en", wantOK: true},
		{name: "fragment with other keys", link: "https://app.example/#x=1&share=tok", want: "tok", wantOK: true},
		{name: "query wins over fragment", link: "https://app.example/?share=q#share=f", want: "q", wantOK: true},
		{name: "escaped plus", link: "https://app.example/?share=a%2Bb", want: "a+b", wantOK: true},
		{name: "none", link: "https://app.example/?other=1", wantOK: false},
		{name: "empty value", link: "https://app.example/?share=", wantOK: false},
		{name: "not a url", link: "::::", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Param(tt.link)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild(t *testing.T) {
	link, err := Build("https://app.example/tool?x=1#old", "a+b$c")
	require.NoError(t, err)

	got, ok := Param(link)
	require.True(t, ok)
	assert.Equal(t, "a+b$c", got)
	assert.NotContains(t, link, "#old")
}

type fakeResolver struct {
	urls  map[string][]string
	err   error
	calls int
}

func (f *fakeResolver) ResolveShare(_ context.Context, id string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.urls[id], nil
}

func TestLoader_ServerFirst(t *testing.T) {
	res := &fakeResolver{urls: map[string][]string{"abc": {"https://x.com"}}}
	l := NewLoader(res, logger.New("error", false))

	assert.Equal(t, []string{"https://x.com"}, l.Load(context.Background(), "abc"))
	assert.Equal(t, 1, res.calls)
}

func TestLoader_FallsBackToCodec(t *testing.T) {
	token, err := sharecodec.Encode([]string{"https://a.com", "https://b.com"})
	require.NoError(t, err)

	for name, res := range map[string]*fakeResolver{
		"server miss":  {urls: map[string][]string{}},
		"server error": {err: errors.New("request failed: 503")},
	} {
		t.Run(name, func(t *testing.T) {
			l := NewLoader(res, logger.New("error", false))
			assert.Equal(t, []string{"https://a.com", "https://b.com"}, l.Load(context.Background(), token))
		})
	}
}

func TestLoader_Offline(t *testing.T) {
	token, err := sharecodec.Encode([]string{"https://a.com"})
	require.NoError(t, err)

	l := NewLoader(nil, logger.New("error", false))
	assert.Equal(t, []string{"https://a.com"}, l.LoadLink(context.Background(), "https://app.example/#share="+token))
	assert.Empty(t, l.LoadLink(context.Background(), "https://app.example/"))
	assert.Empty(t, l.Load(context.Background(), "unknown"))
}
