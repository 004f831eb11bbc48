package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/kmmndr/motion_analyzer/internal/log"
	"github.com/kmmndr/motion_analyzer/internal/motion"
)

func main() {
	var videoPath string
	var minContourArea int
	var movementThreshold float64
	var timeout time.Duration
	var logLevel string

	defaults := motion.DefaultConfig()

	flag.StringVar(&videoPath, "video", "", "Video filename")
	flag.IntVar(&minContourArea, "min-area", defaults.MinContourArea, "Minimum contour area counted as movement")
	flag.Float64Var(&movementThreshold, "threshold", defaults.MovementThreshold, "Movement threshold")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum analysis time")
	flag.StringVar(&logLevel, "log-level", "warning", "Log level")
	flag.Parse()

	if videoPath == "" {
		fmt.Println("Error: missing video filename option")
		os.Exit(1)
	}

	// Logs go to stderr so stdout only carries the report.
	log.Log = log.Logging{Logger: "go-logging"}
	log.Log.Init(logLevel, "", time.UTC)

	config := motion.Config{MovementThreshold: movementThreshold, MinContourArea: minContourArea}
	if err := config.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Open(videoPath)
	if err != nil {
		fmt.Printf("Error: unable to open video file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := motion.NewMotionDetector(config).Analyze(ctx, file)

	report := motion.NewMotionReport(uuid.Must(uuid.NewV4()).String(), filepath.Base(videoPath), result)
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Printf("Error: unable to encode report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))

	if result.Failed() {
		file.Close()
		os.Exit(1)
	}
}
