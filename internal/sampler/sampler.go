package sampler

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/Dicklesworthstone/network_traffic_monitor/internal/model"
	"github.com/Dicklesworthstone/network_traffic_monitor/internal/netstat"
)

// minInterval floors the tick spacing used for rate math so a fast tick or
// clock jitter cannot amplify a small delta into a huge rate.
const minInterval = 0.01

// ErrInterfaceLost means an interface that existed at construction vanished
// between ticks. The quantity being measured no longer exists, so the run
// ends; Sample never retries.
var ErrInterfaceLost = errors.New("network interface lost")

// Engine derives throughput rates from successive counter readings and keeps
// the run-scoped smoothing state. Not safe for concurrent use; the driver
// loop calls Sample from a single goroutine.
type Engine struct {
	src      netstat.Source
	selector string
	useEMA   bool
	alpha    float64
	clk      clock.Clock

	start    model.Counters
	prev     model.Counters
	started  time.Time
	lastTick time.Time

	sentEMA float64
	recvEMA float64
	emaInit bool
}

// New reads the selector once to establish the baseline; it fails with the
// source's error when the selector cannot be resolved, so an engine never
// exists without a valid first reading.
func New(src netstat.Source, selector string, useEMA bool, alpha float64) (*Engine, error) {
	return NewWithClock(src, selector, useEMA, alpha, clock.New())
}

// prober is the optional construction-time check a source may offer; the
// system source uses it to reject a host with no interfaces at all.
type prober interface {
	Probe() error
}

// NewWithClock is New with an injected clock, used by tests to control tick
// spacing exactly.
func NewWithClock(src netstat.Source, selector string, useEMA bool, alpha float64, clk clock.Clock) (*Engine, error) {
	if p, ok := src.(prober); ok {
		if err := p.Probe(); err != nil {
			return nil, err
		}
	}
	first, err := src.Counters(selector)
	if err != nil {
		return nil, err
	}
	now := clk.Now()
	return &Engine{
		src:      src,
		selector: selector,
		useEMA:   useEMA,
		alpha:    alpha,
		clk:      clk,
		start:    first,
		prev:     first,
		started:  now,
		lastTick: now,
	}, nil
}

// Sample reads the counters and emits one snapshot. A counter that went
// backwards (interface reset, wraparound) surfaces as a negative rate and
// total; that is deliberate, not a bug to guard against here.
func (e *Engine) Sample() (model.Sample, error) {
	now := e.clk.Now()
	interval := now.Sub(e.lastTick).Seconds()
	if interval < minInterval {
		interval = minInterval
	}

	current, err := e.src.Counters(e.selector)
	if err != nil {
		if errors.Is(err, netstat.ErrInterfaceNotFound) {
			return model.Sample{}, fmt.Errorf("%w: %q", ErrInterfaceLost, e.selector)
		}
		return model.Sample{}, err
	}

	sentRate := (float64(current.Sent) - float64(e.prev.Sent)) / interval
	recvRate := (float64(current.Recv) - float64(e.prev.Recv)) / interval

	switch {
	case !e.useEMA:
		// Mirror the instant rates so renderers can always read the
		// smoothed fields.
		e.sentEMA = sentRate
		e.recvEMA = recvRate
	case !e.emaInit:
		// Seed from the first observation to avoid warm-up lag.
		e.sentEMA = sentRate
		e.recvEMA = recvRate
		e.emaInit = true
	default:
		e.sentEMA = e.alpha*sentRate + (1-e.alpha)*e.sentEMA
		e.recvEMA = e.alpha*recvRate + (1-e.alpha)*e.recvEMA
	}

	e.prev = current
	e.lastTick = now

	return model.Sample{
		Iface:       e.selector,
		Interval:    interval,
		SentRate:    sentRate,
		RecvRate:    recvRate,
		SentRateEMA: e.sentEMA,
		RecvRateEMA: e.recvEMA,
		EMAEnabled:  e.useEMA,
		EMAAlpha:    e.alpha,
		TotalSent:   int64(current.Sent) - int64(e.start.Sent),
		TotalRecv:   int64(current.Recv) - int64(e.start.Recv),
		Uptime:      now.Sub(e.started).Seconds(),
		Timestamp:   now,
	}, nil
}
