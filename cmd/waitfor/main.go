package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/y0f/waitfor"
	"github.com/y0f/waitfor/internal/config"
)

var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "", "path to a YAML condition file")
		intervalArg = flag.String("interval", "1s", "poll interval")
		timeoutArg  = flag.String("timeout", "", "give up after this long (empty: wait forever)")
		anyMode     = flag.Bool("any", false, "wait until any condition holds instead of all")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		showVersion = flag.Bool("version", false, "print version and exit")

		elapsedArgs   multiFlag
		existsArgs    multiFlag
		notExistsArgs multiFlag
		updatedArgs   multiFlag
		tcpArgs       multiFlag
		notTCPArgs    multiFlag
		httpArgs      multiFlag
		pingArgs      multiFlag
		wsArgs        multiFlag
	)
	flag.Var(&elapsedArgs, "elapsed", "wait until a duration has passed (e.g. 3h10m, 2d, 90)")
	flag.Var(&existsArgs, "exists", "wait until a file exists")
	flag.Var(&notExistsArgs, "not-exists", "wait until a file no longer exists")
	flag.Var(&updatedArgs, "updated", "wait until a file's mtime or size changes")
	flag.Var(&tcpArgs, "tcp", "wait until host:port accepts TCP connections")
	flag.Var(&notTCPArgs, "not-tcp", "wait until host:port no longer accepts TCP connections")
	flag.Var(&httpArgs, "http", "wait until GET returns 200, or CODE,URL for another status")
	flag.Var(&pingArgs, "ping", "wait until a host answers ICMP echo")
	flag.Var(&wsArgs, "ws", "wait until a WebSocket handshake succeeds")
	flag.Parse()

	if *showVersion {
		fmt.Printf("waitfor %s\n", version)
		os.Exit(0)
	}

	logger := setupLogger(*logLevel)

	var conds []waitfor.Condition
	interval := time.Second
	var timeout time.Duration

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fatal(logger, err)
		}
		cond, err := cfg.Wait.Build()
		if err != nil {
			fatal(logger, err)
		}
		conds = append(conds, cond)
		interval = cfg.Interval.Std()
		timeout = cfg.Timeout.Std()
	}

	// Explicit flags override the config file.
	flag.Visit(func(f *flag.Flag) {
		var err error
		switch f.Name {
		case "interval":
			interval, err = config.ParseDuration(*intervalArg)
		case "timeout":
			timeout, err = config.ParseDuration(*timeoutArg)
		}
		if err != nil {
			fatal(logger, err)
		}
	})

	for _, arg := range elapsedArgs {
		d, err := config.ParseDuration(arg)
		if err != nil {
			fatal(logger, err)
		}
		conds = append(conds, waitfor.Elapsed(d, false))
	}
	for _, path := range existsArgs {
		conds = append(conds, waitfor.Exists(path, false))
	}
	for _, path := range notExistsArgs {
		conds = append(conds, waitfor.Exists(path, true))
	}
	for _, path := range updatedArgs {
		conds = append(conds, waitfor.FileUpdated(path, false))
	}
	for _, addr := range tcpArgs {
		c, err := waitfor.TCP(addr, false)
		if err != nil {
			fatal(logger, err)
		}
		conds = append(conds, c)
	}
	for _, addr := range notTCPArgs {
		c, err := waitfor.TCP(addr, true)
		if err != nil {
			fatal(logger, err)
		}
		conds = append(conds, c)
	}
	for _, arg := range httpArgs {
		status, rawurl := splitHTTPArg(arg)
		c, err := waitfor.HTTP(rawurl, false, status)
		if err != nil {
			fatal(logger, err)
		}
		conds = append(conds, c)
	}
	for _, host := range pingArgs {
		conds = append(conds, waitfor.Ping(host, false))
	}
	for _, rawurl := range wsArgs {
		c, err := waitfor.WebSocket(rawurl, false)
		if err != nil {
			fatal(logger, err)
		}
		conds = append(conds, c)
	}

	if len(conds) == 0 {
		fmt.Fprintln(os.Stderr, "error: no conditions given, see -help")
		os.Exit(1)
	}

	cond := waitfor.And(conds...)
	if *anyMode {
		cond = waitfor.Or(conds...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info("waiting", "condition", cond.String(), "interval", interval)

	start := time.Now()
	if err := waitfor.Wait(ctx, cond, interval); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Error("gave up waiting", "timeout", timeout, "elapsed", time.Since(start).Round(time.Millisecond))
		} else {
			logger.Error("interrupted", "elapsed", time.Since(start).Round(time.Millisecond))
		}
		os.Exit(1)
	}

	logger.Info("condition met", "elapsed", time.Since(start).Round(time.Millisecond))
}

func fatal(logger *slog.Logger, err error) {
	logger.Error("invalid arguments", "error", err)
	os.Exit(1)
}

func setupLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
