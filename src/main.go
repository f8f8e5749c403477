package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"liftbank/src/config"
	"liftbank/src/console"
	"liftbank/src/dispatcher"
	"liftbank/src/elev"
	"liftbank/src/timer"
	"liftbank/src/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}
	configPath := flag.String("config", os.Getenv("LIFTBANK_CONFIG"), "YAML file overriding the default timings")
	logLevel := flag.String("log-level", envOr("LIFTBANK_LOG_LEVEL", "info"), "debug, info, warn or error")
	logFile := flag.String("log-file", os.Getenv("LIFTBANK_LOG_FILE"), "also write logs to this file")
	numElevators := flag.Int("elevators", 0, "fleet size (0 keeps the configured value)")
	flag.Parse()

	level, err := utils.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	closeLog, err := utils.InitLogger(level, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Config rejected", "err", err)
		os.Exit(1)
	}
	if *numElevators > 0 {
		cfg.NumElevators = *numElevators
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := timer.NewLoop()
	defer loop.Close()
	events := make(chan elev.Event, cfg.EventBufferSize)
	fleet := dispatcher.New(loop, cfg, events)
	defer fleet.Destroy()
	go loop.Run(ctx, cfg.LoopResolution)

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	term := console.New(fleet, cfg, os.Stdout)
	fmt.Println("liftbank ready, type help for commands")
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			quit, err := term.Handle(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if quit {
				return
			}
		case ev := <-events:
			fmt.Println(console.FormatEvent(ev))
		case <-ctx.Done():
			slog.Info("Shutting down")
			return
		}
	}
}

func readLines(in *os.File, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		slog.Error("Reading input", "err", err)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
