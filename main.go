package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"grid-snake/config"
	"grid-snake/game"
	"grid-snake/game/manager"
	"grid-snake/ui"
	"grid-snake/ui/audio"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const statsPanelWidth = 260

func main() {
	cfg, err := config.Load("snake", os.Args[1:], config.Default())
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, closer, err := config.NewLogger(cfg, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Resolution+statsPanelWidth), int32(cfg.Resolution), "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	// One simulation tick per drawn frame
	rl.SetTargetFPS(int32(cfg.TicksPerSecond))

	stats := manager.NewStatsManager(manager.GroupSize)
	var sink game.RenderSink = ui.NewRenderer(stats)

	if cfg.Sound {
		sp := &audio.Speaker{}
		if err := sp.Init(); err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer sp.Close()
			sink = audio.NewCues(sink, sp, log)
		}
	}

	sessions := game.NewSessionManager(cfg.Game(), stats, game.WithLogger(log))
	if err := sessions.Play(ctx, ui.NewInput(), sink, game.FrameClock{}); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("game stopped")
	}

	log.Info().
		Int("games", stats.GetGamesPlayed()).
		Int("wins", stats.GetWins()).
		Int("high_score", stats.GetHighScore()).
		Float64("avg_score", stats.GetAverageScore()).
		Msg("exiting")
}
