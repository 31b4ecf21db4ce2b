package usecase

import (
	"context"
	"time"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
	applogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
	pkgsf "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/snowflake"
)

// Connector opens a fresh warehouse client. Matches snowflake.NewClient.
type Connector func(opts ...pkgsf.ClientOption) (*pkgsf.Client, error)

// StatusChecker reports live warehouse connectivity. Each check opens and
// closes its own connection; the data-load session is never reused here, so
// a wedged load cannot make the status lie and vice versa.
type StatusChecker struct {
	connect Connector
	opts    []pkgsf.ClientOption
	l       *applogger.Logger
}

func NewStatusChecker(connect Connector, opts []pkgsf.ClientOption, l *applogger.Logger) *StatusChecker {
	return &StatusChecker{connect: connect, opts: opts, l: l}
}

// Check connects, pings, and closes. The transport error is surfaced
// verbatim; no retry.
func (u *StatusChecker) Check(ctx context.Context) models.ConnectionStatus {
	start := time.Now()

	client, err := u.connect(u.opts...)
	if err != nil {
		if u.l != nil {
			u.l.Warn("connection check failed",
				applogger.Int64("latency_ms", time.Since(start).Milliseconds()),
				applogger.Error(err),
			)
		}
		return models.ConnectionStatus{
			Connected: false,
			LatencyMS: time.Since(start).Milliseconds(),
			Error:     err.Error(),
			Category:  string(pkgsf.Classify(err)),
		}
	}
	defer client.Close()

	if err := client.Health(ctx); err != nil {
		return models.ConnectionStatus{
			Connected: false,
			LatencyMS: time.Since(start).Milliseconds(),
			Error:     err.Error(),
			Category:  string(pkgsf.Classify(err)),
		}
	}

	return models.ConnectionStatus{
		Connected: true,
		LatencyMS: time.Since(start).Milliseconds(),
	}
}
