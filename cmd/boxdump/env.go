package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nichevision/flyingsaucer-sub000/config"
)

// env is the state shared by the commands, created before
// any of them runs.
type env struct {
	Cfg   *config.Config
	Log   *zap.Logger
	start time.Time
}

type envKey struct{}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &env{start: time.Now()})
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	panic("internal error: no environment in context")
}

func (e *env) uptime() time.Duration { return time.Since(e.start) }
