// Command chesscore drives the engine over FEN strings for scripting,
// debugging, and CPU profiling of a single search. It is not a UCI client.
package main

import (
	"flag"
	"fmt"

	logging "github.com/op/go-logging"
	"github.com/pkg/profile"

	"github.com/pcmengine/chesscore/internal/board"
	"github.com/pcmengine/chesscore/internal/config"
	"github.com/pcmengine/chesscore/internal/engine"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write a CPU profile to this directory")
	configPath = flag.String("config", "", "path to a TOML config file (defaults used if absent)")
	fen        = flag.String("fen", "", "FEN of the position to search (defaults to the starting position)")
	depth      = flag.Int("depth", 0, "override the configured search depth (0 keeps the config value)")
)

var log = logging.MustGetLogger("cmd")

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuprofile)).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config %s: %v", *configPath, err)
	}
	if *depth > 0 {
		cfg.Search.Depth = *depth
	}

	eng := engine.NewEngineWithConfig(cfg)
	eng.OnSearchInfo(func(info engine.SearchInfo) {
		log.Infof("depth=%d nodes=%d pv=%v", info.Depth, info.Nodes, info.PV)
	})

	if *fen != "" {
		if !eng.LoadFEN(*fen) {
			log.Fatalf("invalid FEN: %s", *fen)
		}
	}

	best := eng.BestEngineMove()
	if best == board.NoMove {
		fmt.Println("no legal moves")
		return
	}

	for _, sm := range eng.SuggestedMoves() {
		fmt.Println(sm.SAN)
	}
}
