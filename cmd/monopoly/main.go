package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/console"
	"github.com/cbodonnell/monopoly/pkg/game"
	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/queue"
	"github.com/cbodonnell/monopoly/pkg/random"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/cbodonnell/monopoly/pkg/version"
	"github.com/cbodonnell/monopoly/pkg/workers"
	"github.com/google/uuid"
)

const (
	menuLoadGame = 1
	menuNewGame  = 2
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	envFile := flag.String("env-file", ".env", "Path to a dotenv file, ignored when missing")
	logLevel := flag.String("log-level", "", "Log level (overrides the config)")
	players := flag.Int("players", 0, "Number of players for a new game, asked when zero")
	load := flag.String("load", "", "ID of a saved game to resume")
	list := flag.Bool("list", false, "List saved games and exit")
	auto := flag.Bool("auto", false, "Answer every prompt with the configured defaults")
	verbose := flag.Bool("verbose", false, "Print every square passed")
	name := flag.String("name", "", "Name of a new game")
	autosave := flag.Bool("autosave", false, "Save the game at the end of every round")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		panic(err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	// stdout belongs to the game
	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Debug("Log level set to %s", parsedLogLevel)
	log.Info("Starting monopoly version %s", version.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.NewRepositoryFromURL(ctx, cfg.DatabaseURL, cfg.Migrations)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	if *list {
		if err := listGames(ctx, repository); err != nil {
			panic(err)
		}
		return
	}

	// workers outlive ctx so that pending saves and events are written after an interrupt
	workerGroup := workers.NewGroup()
	defer workerGroup.Stop()

	eventQueue := queue.NewInMemoryQueue(10000)
	journalWorker := workers.NewJournalWorker(workers.NewJournalWorkerOptions{
		Repository: repository,
		EventQueue: eventQueue,
		Interval:   time.Second,
	})
	workerGroup.Go(journalWorker.Start)

	var saveChan chan workers.SaveGameRequest
	if *autosave || cfg.Autosave {
		saveChan = make(chan workers.SaveGameRequest, 10)
		saveGameWorker := workers.NewSaveGameWorker(workers.NewSaveGameWorkerOptions{
			Repository:   repository,
			SaveGameChan: saveChan,
		})
		workerGroup.Go(saveGameWorker.Start)
	}

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	var decider game.Decider = prompter
	if *auto {
		decider = game.NewDefaultDecider(cfg.Defaults)
	}

	rng, seed, err := random.NewRand(cfg.Seed)
	if err != nil {
		panic(fmt.Sprintf("Failed to seed dice: %v", err))
	}
	log.Info("Using seed %d", seed)

	opts := game.NewGameOptions{
		Name:     *name,
		Rules:    cfg.Rules,
		Rand:     rng,
		Decider:  decider,
		SaveChan: saveChan,
	}
	printer := console.NewPrinter(os.Stdout, *verbose)

	var g *game.Game
	gameID := *load
	if gameID == "" && !*auto {
		fmt.Println("Welcome to Monopoly!")
		if askMenu(prompter) == menuLoadGame {
			if err := listGames(ctx, repository); err != nil {
				log.Error("Failed to list saved games: %v", err)
			}
			gameID = prompter.AskText("\nEnter the ID of the game to load:> ")
		}
	}

	if gameID != "" {
		saved, err := repository.LoadGame(ctx, gameID)
		if err != nil {
			panic(fmt.Sprintf("Failed to load game %s: %v", gameID, err))
		}
		opts.ID = saved.ID
		opts.Name = saved.Name
		opts.Notifier = game.MultiNotifier{printer, game.NewQueueNotifier(saved.ID, eventQueue)}
		g, err = game.FromSnapshot(opts, saved.Snapshot)
		if err != nil {
			panic(fmt.Sprintf("Failed to restore game %s: %v", gameID, err))
		}
		log.Info("Loaded game %s at round %d", g.ID(), g.Round())
	} else {
		count := *players
		if count == 0 {
			if *auto {
				count = cfg.Rules.MinPlayers
			} else {
				count = prompter.AskPlayerCount(cfg.Rules.MinPlayers, cfg.Rules.MaxPlayers)
			}
		}
		opts.ID = uuid.NewString()
		opts.PlayerCount = count
		opts.Notifier = game.MultiNotifier{printer, game.NewQueueNotifier(opts.ID, eventQueue)}
		g, err = game.NewGame(opts)
		if err != nil {
			panic(fmt.Sprintf("Failed to create game: %v", err))
		}
	}

	outcome, err := g.Run(ctx)
	if err != nil && outcome != game.OutcomeInterrupted {
		log.Error("Game %s stopped: %v", g.ID(), err)
	}

	if err := saveFinalState(context.Background(), repository, workerGroup, g); err != nil {
		log.Error("Failed to save game %s: %v", g.ID(), err)
		return
	}
	switch outcome {
	case game.OutcomeSaved, game.OutcomeInterrupted:
		fmt.Printf("\nGame saved. Resume it with -load %s\n", g.ID())
	default:
		fmt.Printf("\nFinal state saved as %s\n", g.ID())
	}
}

// saveFinalState stops the workers before saving g, so that no autosave
// still queued from an earlier round is written over the final state.
func saveFinalState(ctx context.Context, repository repositories.Repository, workerGroup *workers.Group, g *game.Game) error {
	workerGroup.Stop()
	return repository.SaveGame(ctx, g.SavedGame())
}

func askMenu(prompter *console.Prompter) int {
	menu := game.Prompt{
		Question: "What would you like to do?",
		Options:  []string{"Load a game", "Start a new game"},
		Fallback: menuNewGame,
	}
	choice := prompter.Choose(menu)
	if !menu.Valid(choice) {
		return menu.Fallback
	}
	return choice
}

func listGames(ctx context.Context, repository repositories.Repository) error {
	games, err := repository.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}
	if len(games) == 0 {
		fmt.Println("No saved games")
		return nil
	}
	for _, g := range games {
		fmt.Printf("%s  round %-3d  %s  %s\n", g.ID, g.CurrentRound, g.UpdatedAt.Local().Format(time.DateTime), g.Name)
	}
	return nil
}
