package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dicklesworthstone/network_traffic_monitor/internal/config"
	"github.com/Dicklesworthstone/network_traffic_monitor/internal/netstat"
	"github.com/Dicklesworthstone/network_traffic_monitor/internal/render"
	"github.com/Dicklesworthstone/network_traffic_monitor/internal/sampler"
)

func main() {
	cfg, err := config.FromFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ntm:", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "ntm:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	src := netstat.NewSystemSource()

	if cfg.List {
		names, err := src.Interfaces()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	engine, err := sampler.New(src, cfg.Iface, cfg.UseEMA, cfg.Alpha)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		r    render.Renderer
		dash *render.Dashboard
	)
	switch cfg.Mode {
	case config.ModeText:
		r = render.NewText(os.Stdout)
	case config.ModeRecord:
		r = render.NewRecord(os.Stdout)
	default:
		dash = render.NewDashboard(cfg.View)
		dash.Start()
		r = dash
	}

	interrupted, err := loop(ctx, cfg, engine, r, dash)

	// Restore the terminal before printing anything.
	if dash != nil {
		if stopErr := dash.Stop(); err == nil {
			err = stopErr
		}
	}
	if interrupted {
		fmt.Println("\nStopped.")
	}
	return err
}

// loop runs sample-then-render once per tick until the count bound, an
// interrupt, a fatal sampling error, or the dashboard quitting. An interrupt
// lands between ticks; an in-flight tick always completes.
func loop(ctx context.Context, cfg config.Config, engine *sampler.Engine, r render.Renderer, dash *render.Dashboard) (interrupted bool, err error) {
	var dashDone <-chan struct{}
	if dash != nil {
		dashDone = dash.Done()
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	ticks := 0
	for {
		s, err := engine.Sample()
		if err != nil {
			return false, err
		}
		r.Render(s)

		ticks++
		if cfg.Count > 0 && ticks >= cfg.Count {
			return false, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return true, nil
		case <-dashDone:
			return false, nil
		}
	}
}
