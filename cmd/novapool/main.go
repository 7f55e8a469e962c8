package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/tuannm99/novapool/internal"
	"github.com/tuannm99/novapool/internal/bufferpool"
	"github.com/tuannm99/novapool/internal/logger"
	"github.com/tuannm99/novapool/internal/telemetry"
)

const prompt = "novapool> "

func isMetaCommand(line string) bool {
	return strings.HasPrefix(line, "\\") || line == "quit" || line == "exit"
}

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to YAML config")
		histPath = flag.String("history", defaultHistoryPath(), "history file path")
		histMax  = flag.Int("history-max", 2000, "max history lines loaded into memory")
		oneShot  = flag.String("c", "", "run one command and exit")
	)
	flag.Parse()

	if err := run(*cfgPath, *histPath, *histMax, *oneShot); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, histPath string, histMax int, oneShot string) error {
	cfg, err := internal.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tel, shutdownTel, err := telemetry.New(cfg.TelemetryConfig())
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTel(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Metrics.Enabled {
		go func() {
			if err := tel.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
		log.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
	}

	pool := bufferpool.NewPool(
		bufferpool.WithLogger(log),
		bufferpool.WithMeter(tel.Meter),
		bufferpool.WithLRUK(cfg.LRUK),
	)
	defer func() {
		if pool.Initialized() {
			if err := pool.Shutdown(); err != nil {
				log.Warn("pool left open", zap.Error(err))
			}
		}
	}()

	s := &session{
		pool:     pool,
		out:      os.Stdout,
		pageFile: cfg.PageFile,
		frames:   cfg.Frames,
		strategy: cfg.PoolStrategy(),
	}

	if strings.TrimSpace(oneShot) != "" {
		return s.exec(oneShot)
	}
	return repl(s, histPath, histMax)
}

func repl(s *session, histPath string, histMax int) error {
	h := NewHistory(histPath)
	_ = h.Load(histMax)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for _, line := range h.Lines() {
		_ = rl.SaveHistory(line)
	}

	fmt.Println("type \\help for help")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Println("^C")
			continue
		}
		if err != nil {
			// EOF
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isMetaCommand(line) {
			switch line {
			case "\\q", "quit", "exit":
				return nil
			case "\\help":
				fmt.Println(helpText)
			case "\\history":
				h.Print(50)
			default:
				fmt.Printf("unknown command: %s\n", line)
			}
			continue
		}

		_ = h.Append(line)

		if err := s.exec(line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}
