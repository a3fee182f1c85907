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
	"grid-snake/ui/audio"
	"grid-snake/ui/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	// Terminals redraw slowly, so tick at the move rate
	defaults := config.Default()
	defaults.TicksPerSecond = 8
	defaults.MovesPerSecond = 8

	cfg, err := config.Load("snake-term", os.Args[1:], defaults)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The screen owns stderr, so only log when a file is given
	log, closer, err := config.NewLogger(cfg, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := manager.NewStatsManager(manager.GroupSize)
	var sink game.RenderSink = term.NewScreen(screen)
	if cfg.Sound {
		sp := &audio.Speaker{}
		if err := sp.Init(); err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer sp.Close()
			sink = audio.NewCues(sink, sp, log)
		}
	}

	clock := game.NewTickerClock(cfg.TicksPerSecond)
	defer clock.Stop()

	sessions := game.NewSessionManager(cfg.Game(), stats, game.WithLogger(log))
	err = sessions.Play(ctx, term.NewInput(screen), sink, clock)
	screen.Fini()

	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("game stopped")
		fmt.Fprintln(os.Stderr, err)
	}
	fmt.Printf("games %d, wins %d, high score %d\n", stats.GetGamesPlayed(), stats.GetWins(), stats.GetHighScore())
}
