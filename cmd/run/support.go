package main

import (
	"flag"
	"io"
	"log/slog"
	"time"

	"github.com/zintix-labs/scratchlab"
	"github.com/zintix-labs/scratchlab/demo"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/logger"
	"github.com/zintix-labs/scratchlab/runcfg"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/sdk/perf"
	"github.com/zintix-labs/scratchlab/spec"
	"github.com/zintix-labs/scratchlab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	configPath string
	demoName   string
	bet        string
	worker     int
	spins      int
	seed       int64
	format     string
	logMode    string
	pprofmode  string
	showpb     bool
}

func bindVar(args []string, env runcfg.Env, stderr io.Writer) (*config, error) {
	cfg := new(config)
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.configPath, "config", env.Config, "config file (.json/.yaml/.yml, optionally .zst/.gz)")
	fs.StringVar(&cfg.demoName, "demo", "", "embedded demo config name when -config is empty")
	fs.StringVar(&cfg.bet, "bet", env.Bet, "bet amount per spin (decimal, > 0)")
	fs.IntVar(&cfg.worker, "worker", 1, "number of workers")
	fs.IntVar(&cfg.spins, "spins", 1000000, "spins per worker")
	fs.Int64Var(&cfg.seed, "seed", env.Seed, "int64 seed for random number generator (< 0 means random)")
	fs.StringVar(&cfg.format, "format", env.Format, "report format: table, json, yaml")
	fs.StringVar(&cfg.logMode, "log-mode", env.LogMode, "log mode: dev, prod, silence")
	fs.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	fs.BoolVar(&cfg.showpb, "pb", true, "show progress bar on stderr")
	if err := fs.Parse(args); err != nil {
		return nil, errs.InvalidArgf("%v", err)
	}
	if err := cfg.valid(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *config) valid() error {
	if cfg.worker < 1 {
		return errs.InvalidArgf("value err : workers must > 0")
	}
	if cfg.spins < 1 {
		return errs.InvalidArgf("value err : spins must > 0")
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	env, err := runcfg.LoadEnv()
	if err != nil {
		return runcfg.Report(nil, stderr, err)
	}
	cfg, err := bindVar(args, env, stderr)
	if err != nil {
		return runcfg.Report(nil, stderr, err)
	}
	mode, err := logger.ParseLogMode(cfg.logMode)
	if err != nil {
		return runcfg.Report(nil, stderr, err)
	}
	log, _ := logger.WithRunID(logger.NewLoggerTo(stderr, mode))
	err = perf.RunPProf(func() error { return executeSimulator(cfg, log, stdout, stderr) }, cfg.pprofmode)
	return runcfg.Report(log, stderr, err)
}

// 這裡解析並分支要執行的模擬器
func executeSimulator(cfg *config, log *slog.Logger, stdout, stderr io.Writer) error {
	render, err := stats.RenderFor(cfg.format)
	if err != nil {
		return err
	}
	bet, err := runcfg.ParseBet(cfg.bet)
	if err != nil {
		return err
	}
	gs, err := loadSetting(cfg)
	if err != nil {
		return err
	}
	seed, err := runcfg.ResolveSeed(cfg.seed)
	if err != nil {
		return err
	}
	lab, err := scratchlab.New(gs, core.Default(), log)
	if err != nil {
		return err
	}
	s, err := lab.NewSimulatorWithSeed(seed)
	if err != nil {
		return err
	}
	log.Info("simulation start",
		slog.String("game", gs.Name),
		slog.Int64("seed", seed),
		slog.Int("workers", cfg.worker),
		slog.Int("spins", cfg.worker*cfg.spins))

	// 至此確保可執行
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	p.Fprintf(stderr, "%s[WORKERS:%d] [GAME:%s] [BET:%s] [SPINS:%d]%s\n", green, cfg.worker, gs.Name, bet, cfg.worker*cfg.spins, reset)

	var (
		st   *stats.StatReport
		used time.Duration
	)
	if cfg.worker == 1 { // 單線程
		st, used, err = s.Sim(bet, cfg.spins, cfg.showpb)
	} else {
		st, used, err = s.SimMP(bet, cfg.spins, cfg.worker, cfg.showpb) // 併發
	}
	if err != nil {
		return err
	}
	if _, ok := render.(*stats.TableStatReportRender); ok {
		st.StdOut(stdout, used)
		return nil
	}
	return st.WriteWith(stdout, render)
}

func loadSetting(cfg *config) (*spec.GameSetting, error) {
	if cfg.configPath != "" {
		return scratchlab.LoadFile(cfg.configPath)
	}
	return demo.Setting(cfg.demoName)
}
