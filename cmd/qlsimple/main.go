package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lixenwraith/quicklog"
)

// Example TOML content written by --init
const tomlContent = `# Example quicklog.toml
[quicklog]
  name = "simple"
  directory = "./simple_logs"
  filename_time_format = "20060102"
  rollover_period = "1 day@00:00"
  levels = "FATAL,ERROR,WARNING,INFO,DEBUG"
  disabled_levels = ""
  fields = "TIME,LEVEL,COMPONENT,MESSAGE"
  sanitization = "txt"
  buffer_size = 1024
  flush_interval_ms = 100
  # Other settings use defaults
`

func run(configFile string, overrides []string) error {
	cfg, err := quicklog.NewConfigFromFile(configFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(overrides...); err != nil {
		return err
	}

	if err := quicklog.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	engine := quicklog.Default()
	fmt.Printf("Engine initialized, writing to %s\n", engine.CurrentFilename())

	quicklog.Debug("This is a debug message.", "user_id", 123)
	quicklog.Info("Application starting...")
	quicklog.Warning("Potential issue detected.", "threshold", 0.95)
	quicklog.Error("An error occurred!", "code", 500)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c := engine.Component(fmt.Sprintf("worker-%d", id))
			c.Info("started")
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			c.Logf(quicklog.LevelInfo, "finished after %dms", 50+id*50)
		}(i)
	}
	wg.Wait()

	fmt.Println(engine.Stats())

	fmt.Println("Shutting down engine...")
	return quicklog.Shutdown(2 * time.Second)
}

func main() {
	var configFile string

	app := &cli.App{
		Name:      "qlsimple",
		Usage:     "write a few records through a TOML configured quicklog engine",
		ArgsUsage: "[key=value overrides...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Value:       "quicklog.toml",
				Usage:       "TOML config file with a [quicklog] table",
				Destination: &configFile,
			},
			&cli.BoolFlag{
				Name:  "init",
				Usage: "Write an example config file before running",
			},
		},

		Action: func(c *cli.Context) error {
			if c.Bool("init") {
				if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
					return err
				}
				fmt.Printf("Created config file: %s\n", configFile)
			}
			return run(configFile, c.Args().Slice())
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "qlsimple: %v\n", err)
		os.Exit(1)
	}
}
