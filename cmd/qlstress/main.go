package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/lixenwraith/quicklog"
)

type parameters struct {
	directory     string
	period        string
	workers       int
	records       int
	maxMessage    int
	bufferSize    int64
	flushInterval time.Duration
	lockFile      bool
}

var levels = []string{
	quicklog.LevelDebug,
	quicklog.LevelInfo,
	quicklog.LevelWarning,
	quicklog.LevelError,
}

func generateRandomMessage(r *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[r.Intn(len(chars))])
	}
	return sb.String()
}

// worker ingests records until its quota is reached or stop is closed
func worker(id int, engine *quicklog.Engine, params *parameters, stop <-chan struct{}, sent *atomic.Int64, wg *sync.WaitGroup) {
	defer wg.Done()
	r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
	c := engine.Component(fmt.Sprintf("w%03d", id))

	for i := 0; i < params.records; i++ {
		select {
		case <-stop:
			return
		default:
		}
		msg := generateRandomMessage(r, r.Intn(params.maxMessage)+10)
		c.Log(levels[r.Intn(len(levels))], "seq", i, msg)
		sent.Add(1)
	}
}

func run(params *parameters) error {
	engine, err := quicklog.NewBuilder().
		Directory(params.directory).
		Name("stress").
		FilenameTimeFormat("20060102_150405").
		RolloverPeriod(params.period).
		RolloverPoll(100 * time.Millisecond).
		BufferSize(params.bufferSize).
		FlushInterval(params.flushInterval).
		LockFile(params.lockFile).
		Build()
	if err != nil {
		return err
	}

	fmt.Printf("Writing to %s, rollover %s\n", engine.CurrentFilename(), engine.RolloverSpec())
	fmt.Printf("Starting %d workers x %d records. Press Ctrl+C to stop early.\n", params.workers, params.records)

	stop := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping workers...")
		close(stop)
	}()

	var wg sync.WaitGroup
	var sent atomic.Int64
	startTime := time.Now()
	for i := 0; i < params.workers; i++ {
		wg.Add(1)
		go worker(i, engine, params, stop, &sent, &wg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
wait:
	for {
		select {
		case <-done:
			break wait
		case <-ticker.C:
			fmt.Printf("\r%s ingested, overflow %s", humanize.Comma(sent.Load()), humanize.Comma(int64(engine.OverflowCount())))
		}
	}
	duration := time.Since(startTime)

	if err := engine.Flush(5 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "\nflush: %v\n", err)
	}
	stats := engine.Stats()

	fmt.Printf("\n--- Test Finished ---\n")
	fmt.Printf("Ingested %s records in %v", humanize.Comma(sent.Load()), duration.Round(time.Millisecond))
	if duration.Seconds() > 0 {
		fmt.Printf(" (%s/s)", humanize.Comma(int64(float64(sent.Load())/duration.Seconds())))
	}
	fmt.Println()
	fmt.Println(stats)

	fmt.Println("Shutting down engine (allowing up to 10s)...")
	return engine.Shutdown(10 * time.Second)
}

func main() {
	var params parameters

	app := &cli.App{
		Name:  "qlstress",
		Usage: "quicklog concurrent ingest stress test",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "directory",
				Aliases:     []string{"d"},
				Value:       "./stress_logs",
				Usage:       "Log directory",
				Destination: &params.directory,
			},
			&cli.StringFlag{
				Name:        "period",
				Aliases:     []string{"p"},
				Value:       "5 seconds",
				Usage:       "Rollover period, e.g. \"1 day@00:00\" or \"Sunday@03:00\"",
				Destination: &params.period,
			},
			&cli.IntFlag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Value:       100,
				Usage:       "Number of concurrent producers",
				Destination: &params.workers,
			},
			&cli.IntFlag{
				Name:        "records",
				Aliases:     []string{"n"},
				Value:       5000,
				Usage:       "Records per producer",
				Destination: &params.records,
			},
			&cli.IntFlag{
				Name:        "max-message",
				Value:       512,
				Usage:       "Maximum random message size in bytes",
				Destination: &params.maxMessage,
			},
			&cli.Int64Flag{
				Name:        "buffer-size",
				Aliases:     []string{"b"},
				Value:       1000,
				Usage:       "Per-buffer record capacity",
				Destination: &params.bufferSize,
			},
			&cli.DurationFlag{
				Name:        "flush-interval",
				Aliases:     []string{"f"},
				Value:       10 * time.Millisecond,
				Usage:       "Flush cycle interval",
				Destination: &params.flushInterval,
			},
			&cli.BoolFlag{
				Name:        "lock-file",
				Usage:       "Hold an exclusive lock on the open log file",
				Destination: &params.lockFile,
			},
		},

		Action: func(c *cli.Context) error {
			if params.workers <= 0 || params.records <= 0 || params.maxMessage <= 0 {
				return cli.Exit("workers, records and max-message must be positive", 2)
			}
			return run(&params)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "qlstress: %v\n", err)
		os.Exit(1)
	}
}
