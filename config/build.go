package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/philipp01105/logfan/filter"
	"github.com/philipp01105/logfan/formatter"
	"github.com/philipp01105/logfan/handler"
	"github.com/philipp01105/logfan/logger"
	"github.com/philipp01105/logfan/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup is a routing graph built from a Config: one registry reporting to
// one transport that delivers to the configured sink.
type Setup struct {
	Registry  *logger.Registry
	Transport *transport.Transport
	// Sink is the listener registered on Transport
	Sink handler.EventListener
}

// Logger returns the named logger of the registry.
func (s *Setup) Logger(name string) *logger.Logger {
	return s.Registry.GetLogger(name)
}

// Close closes the registry and then the transport.
func (s *Setup) Close() error {
	return multierr.Append(s.Registry.Close(), s.Transport.Close())
}

// Build validates cfg and wires a registry, transport and sink writing to
// out (default: os.Stdout).
func Build(cfg Config, out io.Writer) (*Setup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}
	sink, err := NewSink(cfg.Output, out)
	if err != nil {
		return nil, err
	}
	rates, err := cfg.Rates()
	if err != nil {
		return nil, err
	}
	if len(rates) > 0 {
		rl, err := handler.NewRateLimited(sink, handler.RateLimitConfig{Rates: rates})
		if err != nil {
			return nil, err
		}
		sink = rl
	}
	flt, err := filter.Compile(cfg.Filter)
	if err != nil {
		return nil, err
	}

	t := transport.New(transport.Config{
		Name:             cfg.Name,
		BufferCapacity:   cfg.Transport.BufferCapacity,
		DisableRecycling: cfg.Transport.DisableRecycling,
		DefaultBroadcast: cfg.Transport.DefaultBroadcast,
		Console:          handler.NewConsoleHandler(handler.ConsoleConfig{Writer: out, Color: cfg.Output.Color}),
		Filter:           flt,
		Listeners:        []handler.EventListener{sink},
	})
	rc := cfg.RangeConfig()
	reg := logger.NewRegistry(logger.RegistryConfig{
		Name:      cfg.Name,
		Transport: t,
		Range:     &rc,
	})
	if cfg.Solo != "" {
		reg.SetSoloLogger(reg.GetLogger(cfg.Solo))
	}
	return &Setup{Registry: reg, Transport: t, Sink: sink}, nil
}

// NewSink creates the listener named by o.Sink, rendering to out.
func NewSink(o OutputConfig, out io.Writer) (handler.EventListener, error) {
	asJSON := o.Format == FormatJSON
	switch o.Sink {
	case "", SinkConsole:
		fc := formatter.Config{Separator: o.Separator, MaxLength: o.MaxLength}
		var f formatter.Formatter = formatter.NewTextFormatter(fc)
		if asJSON {
			f = formatter.NewJSONFormatter(fc)
		}
		return handler.NewConsoleHandler(handler.ConsoleConfig{
			Writer:    out,
			Formatter: f,
			Params:    &fc,
			Color:     o.Color,
		}), nil
	case SinkZap:
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		if asJSON {
			enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		}
		return handler.NewZapListener(zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), zapcore.DebugLevel))), nil
	case SinkZerolog:
		w := out
		if !asJSON {
			w = zerolog.ConsoleWriter{Out: out, NoColor: !o.Color}
		}
		return handler.NewZerologListener(zerolog.New(w).Level(zerolog.TraceLevel)), nil
	case SinkLogrus:
		l := logrus.New()
		l.SetOutput(out)
		l.SetLevel(logrus.TraceLevel)
		if asJSON {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{DisableColors: !o.Color, FullTimestamp: true})
		}
		return handler.NewLogrusListener(l), nil
	case SinkSlog:
		opts := &slog.HandlerOptions{Level: handler.CoreLevelToSlog(logger.DebugLevel)}
		var h slog.Handler = slog.NewTextHandler(out, opts)
		if asJSON {
			h = slog.NewJSONHandler(out, opts)
		}
		return handler.NewSlogListener(h), nil
	}
	return nil, errors.Errorf("config: unknown sink %q", o.Sink)
}
