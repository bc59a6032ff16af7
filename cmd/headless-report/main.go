package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Bomb-Maze/internal/game"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

type runStats struct {
	runIndex int
	game.RunStats

	verdict string
	reason  string
	report  string // full run report, only kept for failed runs with -report
}

type options struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	workers  int
	level    int
	config   string
	report   bool
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 5, "number of headless bot runs")
	flag.IntVar(&o.ticks, "ticks", 7200, "tick budget per run")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base bot seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&o.workers, "workers", 4, "runs simulated in parallel")
	flag.IntVar(&o.level, "level", 0, "play only this level (1-based); 0 plays the whole campaign")
	flag.StringVar(&o.config, "config", "", "level catalogue YAML (default: embedded levels)")
	flag.BoolVar(&o.report, "report", false, "print the full run report for every lost or stalled run")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := validate(o); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	cat, err := levels.Resolve(o.config)
	if err != nil {
		logger.Fatal().Err(err).Str("config", o.config).Msg("load levels")
	}
	if o.level > cat.Len() {
		fmt.Printf("error: -level %d out of range (catalogue has %d levels)\n", o.level, cat.Len())
		return
	}

	mode := "campaign"
	if o.level > 0 {
		mode = fmt.Sprintf("level-%d", o.level)
	}
	fmt.Printf("=== Headless Bot Report ===\n")
	fmt.Printf("mode=%s runs=%d ticks=%d seed_base=%d seed_step=%d workers=%d\n\n",
		mode, o.runs, o.ticks, o.seedBase, o.seedStep, o.workers)

	all, err := runAll(context.Background(), cat, o, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("runs aborted")
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
}

func validate(o options) error {
	switch {
	case o.runs <= 0:
		return fmt.Errorf("-runs must be > 0")
	case o.ticks <= 0:
		return fmt.Errorf("-ticks must be > 0")
	case o.workers <= 0:
		return fmt.Errorf("-workers must be > 0")
	case o.level < 0:
		return fmt.Errorf("-level must be >= 0")
	}
	return nil
}

// runAll plays every run with at most o.workers in flight. Results keep run
// order regardless of completion order.
func runAll(ctx context.Context, cat *levels.Catalogue, o options, logger zerolog.Logger) ([]runStats, error) {
	all := make([]runStats, o.runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := 0; i < o.runs; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := o.seedBase + int64(i)*o.seedStep
			var rs runStats
			if o.level > 0 {
				rs = runLevel(cat, o.level-1, seed, o.ticks, o.report)
			} else {
				rs = runCampaign(cat, seed, o.ticks, o.report)
			}
			rs.runIndex = i + 1
			all[i] = rs
			logger.Info().
				Int("run", rs.runIndex).
				Str("id", rs.RunID.String()).
				Int64("seed", seed).
				Str("verdict", rs.verdict).
				Int("ticks", rs.Ticks).
				Msg("run finished")
			return nil
		})
	}
	return all, g.Wait()
}

// runCampaign drives a whole session with the bot until it is won, lost or
// out of ticks.
func runCampaign(cat *levels.Catalogue, seed int64, ticks int, keepReport bool) runStats {
	id := uuid.New()
	s := game.NewSession(cat)
	bot := game.NewBot(seed)
	s.Start()
	for s.Tick() < ticks {
		st := s.State()
		if st == game.StateWon || st == game.StateLost {
			break
		}
		var in game.Input
		if st == game.StatePlaying {
			in = bot.Think(s.Sim())
		}
		s.Step(in)
	}
	rs := runStats{RunStats: game.CollectStats(id, seed, s)}
	rs.verdict, rs.reason = classify(rs.RunStats)
	if keepReport && rs.verdict != "won" {
		rs.report = game.RunReport(id, s, 600)
	}
	return rs
}

// runLevel plays one level in the headless harness.
func runLevel(cat *levels.Catalogue, level int, seed int64, ticks int, keepReport bool) runStats {
	ts := game.NewTestSim(game.WithCatalogueLevel(cat, level), game.WithSeed(seed), game.WithBot())
	ts.RunTicks(ticks)
	rs := runStats{RunStats: ts.Stats(uuid.New())}
	rs.verdict, rs.reason = classify(rs.RunStats)
	if keepReport && rs.verdict != "won" {
		rs.report = ts.SimLog.Summary(ts.Sim) + "\n" + game.BoardSnapshot(ts.Sim)
	}
	return rs
}

// classify names the outcome of a run and the most likely reason for it.
func classify(st game.RunStats) (string, string) {
	switch st.State {
	case game.StateWon:
		return "won", fmt.Sprintf("cleared=%d", st.LevelsCleared)
	case game.StateLost:
		if st.KilledByBomb {
			return "lost", "own_blast"
		}
		return "lost", "caught"
	default:
		if st.BombsPlaced == 0 {
			return "stalled", "never_bombed"
		}
		if st.EnemiesKilled == 0 {
			return "stalled", "no_kills"
		}
		return "stalled", "exit_not_reached"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.Seed, rs.RunID)
	fmt.Printf("verdict=%s reason=%s level=%d cleared=%d ticks=%d\n",
		rs.verdict, rs.reason, rs.Level+1, rs.LevelsCleared, rs.Ticks)
	fmt.Printf("phase_markers: first_bomb=%d first_kill=%d death=%d\n",
		rs.FirstBombTick, rs.FirstKillTick, rs.DeathTick)
	fmt.Printf("event_totals: bombs_placed=%d bombs_exploded=%d enemies_killed=%d coins=%d moves=%d\n",
		rs.BombsPlaced, rs.BombsExploded, rs.EnemiesKilled, rs.CoinsCollected, rs.Score.Moves)
	if rs.report != "" {
		fmt.Print(rs.report)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	verdicts := map[string]int{}
	reasons := map[string]int{}
	totalBombs, totalKills, totalCoins, totalCleared := 0, 0, 0, 0
	var bombTicks, killTicks, deathTicks []int
	for _, rs := range all {
		verdicts[rs.verdict]++
		reasons[rs.verdict+":"+rs.reason]++
		totalBombs += rs.BombsPlaced
		totalKills += rs.EnemiesKilled
		totalCoins += rs.CoinsCollected
		totalCleared += rs.LevelsCleared
		if rs.FirstBombTick >= 0 {
			bombTicks = append(bombTicks, rs.FirstBombTick)
		}
		if rs.FirstKillTick >= 0 {
			killTicks = append(killTicks, rs.FirstKillTick)
		}
		if rs.DeathTick >= 0 {
			deathTicks = append(deathTicks, rs.DeathTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d verdicts: %s\n", len(all), joinCounts(verdicts))
	fmt.Printf("reasons: %s\n", joinCounts(reasons))
	fmt.Printf("avg_per_run: levels_cleared=%.1f bombs=%.1f kills=%.1f coins=%.1f\n",
		avg(totalCleared, len(all)), avg(totalBombs, len(all)), avg(totalKills, len(all)), avg(totalCoins, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_bomb=%s first_kill=%s death=%s\n",
		avgTickString(bombTicks), avgTickString(killTicks), avgTickString(deathTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
