// Command spacecalibrator runs the calibration tick loop against a mock
// tracking runtime, demonstrating the wiring a real host (tracking runtime,
// MQTT offset driver, YAML profile store) would perform. It is not a
// replacement for the runtime-embedded integration the core is designed for
// (spec.md §6). It runs the tick loop and periodic profile application; it
// never starts a calibration session, so the solve path is not exercised
// from here.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/itohio/spacecalibrator/adapters/mock"
	"github.com/itohio/spacecalibrator/adapters/mqttoffsetdriver"
	"github.com/itohio/spacecalibrator/adapters/profilestore"
	"github.com/itohio/spacecalibrator/calibration"
)

func main() {
	profilePath := flag.String("profile", "spacecalibrator.yaml", "Path to the calibration profile YAML file")
	mqttBroker := flag.String("mqtt-broker", "", "MQTT broker URL for the offset driver, e.g. tcp://localhost:1883 (empty disables the driver)")
	mqttTopic := flag.String("mqtt-topic", "spacecalibrator/offset", "MQTT topic for SetDeviceTransform requests")
	sampleCount := flag.Int("samples", 40, "Target sample count for a Rotation-state calibration session")
	referenceID := flag.Int("reference", 0, "Reference device ID (HMD)")
	targetID := flag.Int("target", 1, "Target device ID")
	tickHz := flag.Float64("hz", 20, "Tick rate in Hz")
	help := flag.Bool("help", false, "Show help message")

	flag.Parse()
	if *help {
		flag.PrintDefaults()
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := profilestore.New(*profilePath)
	profile, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load profile: %v\n", err)
		os.Exit(1)
	}

	calCtx := calibration.NewContext(*sampleCount)
	calCtx.ApplyProfile(profile)
	if calCtx.ReferenceID == 0 && calCtx.TargetID == 0 {
		calCtx.ReferenceID = *referenceID
		calCtx.TargetID = *targetID
	}

	tracking := mock.NewTrackingRuntime()
	chaperone := mock.NewChaperoneRuntime()

	var driver calibration.OffsetDriver
	if *mqttBroker != "" {
		d, err := mqttoffsetdriver.New(mqttoffsetdriver.Config{
			Broker:   *mqttBroker,
			ClientID: "spacecalibrator",
			Topic:    *mqttTopic,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: connect offset driver: %v\n", err)
			os.Exit(1)
		}
		defer d.Close()
		driver = d
	} else {
		driver = mock.NewOffsetDriver()
	}

	calibrator := calibration.NewCalibrator(calCtx, tracking, chaperone, driver, store)

	period := time.Duration(float64(time.Second) / *tickHz)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := time.Now()
	calibrator.Log.Info().Str("profile", *profilePath).Int("samples", *sampleCount).Msg("spacecalibrator starting")

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			now := t.Sub(start).Seconds()
			if err := calibrator.Tick(ctx, now); err != nil {
				calibrator.Log.Warn().Err(err).Msg("tick failed")
			}
		}
	}
}
