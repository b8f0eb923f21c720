package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yndnr/tokgate/internal/core/domain"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/internal/telemetry/metric"
)

// Driver names a delivery backend.
type Driver string

const (
	DriverFile     Driver = "file"
	DriverPostmark Driver = "postmark"
	DriverLog      Driver = "log"
)

// Errors.
var (
	ErrInvalidConfig = errors.New("notify: invalid configuration")
	ErrUnknownDriver = errors.New("notify: unknown driver")
)

// Notifier delivers a token to its recipient.
type Notifier interface {
	Deliver(ctx context.Context, recipient, token string) error
}

// Config selects and configures a driver.
type Config struct {
	Driver      string
	ProductName string
	File        FileConfig
	Postmark    PostmarkConfig
}

// Options holds the runtime dependencies shared by all drivers.
type Options struct {
	// Validity is the token lifetime quoted in messages.
	Validity time.Duration
	Clock    clockwork.Clock
	Logger   logger.Logger
	Metrics  *metric.Registry
}

// New builds the notifier selected by cfg.Driver.
func New(cfg Config, opts Options) (Notifier, error) {
	if opts.Validity <= 0 {
		opts.Validity = domain.TokenExpiry
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	composer := NewComposer(cfg.ProductName, opts.Validity)

	driver := Driver(strings.ToLower(strings.TrimSpace(cfg.Driver)))
	var (
		n   Notifier
		err error
	)
	switch driver {
	case DriverFile, "":
		driver = DriverFile
		n = NewFileNotifier(cfg.File, composer, opts.Clock)
	case DriverPostmark:
		n, err = NewPostmarkNotifier(cfg.Postmark, composer)
	case DriverLog:
		n = NewLogNotifier(opts.Logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return &instrumented{next: n, driver: driver, log: opts.Logger, metrics: opts.Metrics}, nil
}

// instrumented counts deliveries per driver and result.
type instrumented struct {
	next    Notifier
	driver  Driver
	log     logger.Logger
	metrics *metric.Registry
}

func (i *instrumented) Deliver(ctx context.Context, recipient, token string) error {
	err := i.next.Deliver(ctx, recipient, token)
	i.metrics.Notified(string(i.driver), err)
	if err != nil {
		i.log.Warn("notification failed", "driver", string(i.driver), "error", err)
	}
	return err
}
