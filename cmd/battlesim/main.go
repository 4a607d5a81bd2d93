// Command battlesim runs headless wild battles between two catalog
// species and prints how they ended.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/ericogr/pocket-arena/internal/catalog"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/keys"
	"github.com/ericogr/pocket-arena/internal/logging"
)

func main() {
	catalogPath := flag.String("catalog", "./data/catalog.yaml", "path to the creature catalog")
	player := flag.String("player", "cindercub", "species key of the player's creature")
	wild := flag.String("wild", "rattle", "species key of the wild creature")
	level := flag.Int("level", 10, "level of both creatures")
	n := flag.Int("n", 100, "number of battles")
	seed := flag.Uint64("seed", 1, "base random seed")
	catch := flag.Bool("catch", false, "throw balls at the wild creature once it is below half HP")
	flag.Parse()

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		logging.Fatal("failed to load catalog", err, logging.Fields{"catalog_path": *catalogPath})
	}
	cfg := simConfig{level: *level, catch: *catch}
	if cfg.player, err = cat.Species(*player); err != nil {
		logging.Fatal("unknown player species", err, logging.Fields{"species": *player})
	}
	if cfg.wild, err = cat.Species(*wild); err != nil {
		logging.Fatal("unknown wild species", err, logging.Fields{"species": *wild})
	}
	if *level < 1 || *level > 100 || *n < 1 {
		logging.Fatal("invalid flags", nil, logging.Fields{"level": *level, "n": *n})
	}

	t := newTally()
	for i := 0; i < *n; i++ {
		outcome, rounds, err := simulate(cfg, *seed, uint64(i))
		if err != nil {
			logging.Fatal("simulation failed", err, logging.Fields{"battle": i})
		}
		t.add(outcome, rounds)
	}
	report(os.Stdout, cfg, t)
}

func report(out *os.File, cfg simConfig, t *tally) {
	fmt.Fprintf(out, "%s vs wild %s at level %d, %d battles, %.1f rounds on average\n",
		keys.DisplayName(cfg.player.Key), keys.DisplayName(cfg.wild.Key), cfg.level, t.battles, t.meanRounds())

	outcomes := make([]engine.Outcome, 0, len(t.outcomes))
	for o := range t.outcomes {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OUTCOME\tCOUNT\tSHARE")
	for _, o := range outcomes {
		c := t.outcomes[o]
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", o, c, 100*float64(c)/float64(t.battles))
	}
	w.Flush()
}
