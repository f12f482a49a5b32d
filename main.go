/*
tidewatch runs the NPC decision engine headless: it loads engine tunables
from a YAML config, builds an empty simulation.Driver, then runs the tick
loop, the command surface, and the spectator viewer concurrently until
interrupted. The three long-running loops share one cancellation path via
errgroup, so a listener failure or SIGINT winds all of them down together.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"tidewatch/command"
	"tidewatch/config"
	"tidewatch/simulation"
	"tidewatch/viewer"
)

const shutdownGrace = 10 * time.Second

var (
	configPath *string
	dbg        *bool
)

// TODO: per 12-factor rules these should come from env/flags uniformly;
// config.FromYaml covers the file case for now.
func init() {
	configPath = flag.String("config", "./config.yaml", "path to the engine config YAML file")
	dbg = flag.Bool("debug", false, "enable verbose tick logging")
	flag.Parse()
}

func loadConfig(path string) *config.EngineConfig {
	cfg, err := config.FromYaml(path)
	if err != nil {
		fmt.Printf("no usable config at %q (%v), falling back to defaults\n", path, err)
		return config.Default()
	}
	return cfg
}

func runApp() error {
	cfg := loadConfig(*configPath)
	cfg.Apply()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	driver := simulation.New()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return runTickLoop(gctx, driver, cfg.TickRate, *dbg)
	})

	group.Go(func() error {
		handler := command.NewHandler(driver, cfg)
		return serveHTTP(gctx, cfg.CommandAddr, handler.Router())
	})

	group.Go(func() error {
		tickInterval := time.Duration(float64(time.Second) / cfg.TickRate)
		return viewer.NewServer(cfg.ViewerAddr, driver, tickInterval).Serve(gctx)
	})

	return group.Wait()
}

// runTickLoop steps driver at a fixed cadence until ctx is canceled. Step
// is the sole progression primitive; everything else in the process only
// reads.
func runTickLoop(ctx context.Context, driver *simulation.Driver, tickRate float64, dbg bool) error {
	interval := time.Duration(float64(time.Second) / tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			driver.Step(dt)
			if dbg {
				fmt.Printf("tick clock=%.2f agents=%d\n", driver.Clock(), len(driver.Agents()))
			}
		}
	}
}

// serveHTTP runs an http.Server on addr with handler until ctx is canceled,
// then shuts it down gracefully. Mirrors viewer.Server.Serve's own
// listen/select-on-ctx-or-error shape so both HTTP surfaces in this binary
// behave the same way under shutdown.
func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("command server: %w", err)
		}
		return nil
	}
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
