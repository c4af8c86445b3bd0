package state

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"antcss/config"
)

func TestEnvFromContext(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.start.IsZero() {
		t.Error("start time is not set")
	}
	// main relies on nil logger to report early errors to stderr
	if env.Log != nil || env.Cfg != nil || env.Rpt != nil {
		t.Errorf("fresh environment is not empty: %+v", env)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for context without environment")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_ResolveOutput(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		arg  string
		want string
	}{
		{"configured", &config.Config{Output: config.OutputConfig{Dir: "generated"}}, "", "generated"},
		{"argument wins", &config.Config{Output: config.OutputConfig{Dir: "generated"}}, "dist/css", "dist/css"},
		{"argument without config", nil, "out", "out"},
		{"nothing", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &LocalEnv{Cfg: tt.cfg}
			if got := env.ResolveOutput(tt.arg); got != tt.want {
				t.Errorf("ResolveOutput(%q) = %q, want %q", tt.arg, got, tt.want)
			}
			if env.Out != tt.want {
				t.Errorf("Out = %q, want %q", env.Out, tt.want)
			}
		})
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	env := &LocalEnv{}
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("redirect without logger must do nothing")
	}
	env.RestoreStdLog()

	env.Log = zaptest.NewLogger(t)
	env.RedirectStdLog()
	if env.restoreStdLog == nil {
		t.Fatal("standard log was not redirected")
	}
	env.RestoreStdLog()
}
