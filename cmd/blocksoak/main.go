// Command blocksoak runs the simulation headless under a random input
// script and reports timing, memory and gameplay statistics. Useful for
// soak-testing the systems without a display.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/game"
)

const tickDelta = 1.0 / 60.0

// scriptSystem feeds random intents into the simulation and restarts after
// every game over.
type scriptSystem struct {
	Intent  ecs.Singleton[game.Intent]
	Session ecs.Singleton[game.Session]

	rng      *rand.Rand
	gameOver int
}

func (s *scriptSystem) Execute(frame *ecs.Frame) {
	in := s.Intent.Get()
	*in = game.Intent{}

	switch s.rng.IntN(10) {
	case 0, 1:
		in.MoveX = -1
	case 2, 3:
		in.MoveX = 1
	case 4:
		in.Rotate = 1
	case 5:
		in.SoftDrop = true
	case 6:
		in.HardDrop = true
	}

	if s.Session.Get().Phase == game.PhaseGameOver {
		s.gameOver++
		in.Restart = true
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	seed := flag.Uint64("seed", 1, "Seed for the input script.")
	flag.Parse()

	log.Println("Starting soak run...")

	world := game.NewWorld()
	script := &scriptSystem{rng: rand.New(rand.NewPCG(*seed, 0))}
	scheduler := game.NewSimScheduler(world, script)

	report := &Report{
		Duration: *duration,
		Seed:     *seed,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			tickStart := time.Now()
			scheduler.Once(tickDelta)
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
			report.TotalTicks++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	var session *game.Session
	world.ReadSingleton(&session)
	report.FinalScore = session.Score
	report.FinalLines = session.Lines
	report.FinalLevel = session.Level
	report.GamesPlayed = script.gameOver + 1
	report.Entities = world.EntityCount()
	report.SchedulerStats = scheduler.Stats()

	log.Println("Soak run finished.")

	fmt.Println("\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
