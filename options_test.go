package hub

import (
	"context"
	"net/http"
	"testing"
)

func TestClientOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cc := newClientConfig()
		if cc.httpClient != http.DefaultClient {
			t.Error("default HTTP client is not http.DefaultClient")
		}
		if cc.logger != nil {
			t.Error("default logger should be nil")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		custom := &countingTransport{}
		cc := newClientConfig()
		for _, opt := range []Option{WithHTTPClient(custom), WithDevKey("key")} {
			opt(cc)
		}
		if cc.httpClient != HTTPClient(custom) {
			t.Error("custom HTTP client not applied")
		}
		if cc.devKey != "key" {
			t.Errorf("devKey = %q", cc.devKey)
		}
	})
}

func TestCallOptions(t *testing.T) {
	cc := applyCallOptions([]CallOption{
		WithRegistry("https://other.example/index.json"),
		WithTarget("demo.json"),
		WithArtifactName("custom.json"),
		WithCallDevKey("call-key"),
	})

	if cc.registry != "https://other.example/index.json" {
		t.Errorf("registry = %q", cc.registry)
	}
	if cc.target != "demo.json" {
		t.Errorf("target = %q", cc.target)
	}
	if cc.artifactName != "custom.json" {
		t.Errorf("artifactName = %q", cc.artifactName)
	}
	if cc.devKey != "call-key" {
		t.Errorf("devKey = %q", cc.devKey)
	}
}

func TestWithArtifactName(t *testing.T) {
	prog := &fakeProgram{saveContent: []byte(`{}`)}

	pkg, err := New(Config{}).PackageProgram(context.Background(), "acme/demo", prog,
		WithArtifactName("snapshot.json"))
	if err != nil {
		t.Fatalf("PackageProgram() error = %v", err)
	}
	if pkg.Files[0].Target != "snapshot.json" {
		t.Errorf("target = %q, want snapshot.json", pkg.Files[0].Target)
	}
}
