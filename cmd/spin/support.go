package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab"
	"github.com/zintix-labs/scratchlab/corefmt"
	"github.com/zintix-labs/scratchlab/demo"
	"github.com/zintix-labs/scratchlab/dto"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/logger"
	"github.com/zintix-labs/scratchlab/runcfg"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/spec"
)

type config struct {
	configPath string
	demoName   string
	bet        string
	seed       int64
	format     string
	logMode    string
	replay     string // base64url 局前狀態
	request    string // JSON 請求檔案路徑，"-" 代表 stdin
}

func bindVar(args []string, env runcfg.Env, stderr io.Writer) (*config, error) {
	cfg := new(config)
	fs := flag.NewFlagSet("spin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.configPath, "config", env.Config, "config file (.json/.yaml/.yml, optionally .zst/.gz)")
	fs.StringVar(&cfg.demoName, "demo", "", "embedded demo config name when -config is empty")
	fs.StringVar(&cfg.bet, "betting-amount", env.Bet, "bet amount (decimal, >= 0)")
	fs.Int64Var(&cfg.seed, "seed", env.Seed, "int64 seed for random number generator (< 0 means random)")
	fs.StringVar(&cfg.format, "format", env.Format, "output format: json, yaml")
	fs.StringVar(&cfg.logMode, "log-mode", env.LogMode, "log mode: dev, prod, silence")
	fs.StringVar(&cfg.replay, "replay", "", "replay a spin from its start_b64u state")
	fs.StringVar(&cfg.request, "request", "", "read a JSON spin request from a file ('-' for stdin)")
	if err := fs.Parse(args); err != nil {
		return nil, errs.InvalidArgf("%v", err)
	}
	if fs.NArg() > 0 {
		return nil, errs.InvalidArgf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
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
	return runcfg.Report(log, stderr, execute(cfg, log, stdin, stdout))
}

func execute(cfg *config, log *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	bet, snap, err := cfg.input(stdin)
	if err != nil {
		return err
	}
	gs, err := loadSetting(cfg)
	if err != nil {
		return err
	}
	log.Info("config loaded", slog.String("game", gs.Name), slog.Int("rows", gs.Rows), slog.Int("columns", gs.Columns))

	seed, err := runcfg.ResolveSeed(cfg.seed)
	if err != nil {
		return err
	}
	lab, err := scratchlab.New(gs, core.Default(), log)
	if err != nil {
		return err
	}
	m, err := lab.NewMachineWithSeed(seed)
	if err != nil {
		return err
	}

	var sr *buf.SpinResult
	if len(snap) > 0 {
		sr, err = m.Replay(bet, snap)
	} else {
		sr, err = m.Spin(bet)
	}
	if err != nil {
		return err
	}
	log.Info("spin done", slog.String("reward", sr.Reward.String()), slog.Any("combinations", sr.CombinationNames()))

	res, err := dto.NewSpinResultDTO(gs.Name, sr)
	if err != nil {
		return err
	}
	return dto.Render(stdout, cfg.format, res)
}

// input 取得押注與可選的局前狀態：-request 優先，其次 -betting-amount / -replay。
func (cfg *config) input(stdin io.Reader) (decimal.Decimal, []byte, error) {
	if cfg.request != "" {
		r := stdin
		if cfg.request != "-" {
			f, err := os.Open(cfg.request)
			if err != nil {
				return decimal.Zero, nil, errs.WrapIO(err, "open spin request failed")
			}
			defer f.Close()
			r = f
		}
		req, err := dto.DecodeSpinRequest(r)
		if err != nil {
			return decimal.Zero, nil, err
		}
		bet, snap, err := req.Parse()
		if err != nil {
			return decimal.Zero, nil, err
		}
		if bet.IsNegative() {
			return decimal.Zero, nil, errs.InvalidArgf("bet must not be negative, got %s", bet)
		}
		return bet, snap, nil
	}

	bet, err := runcfg.ParseBet(cfg.bet)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if cfg.replay == "" {
		return bet, nil, nil
	}
	snap, err := corefmt.DecodeBase64URL(cfg.replay)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return bet, snap, nil
}

func loadSetting(cfg *config) (*spec.GameSetting, error) {
	if cfg.configPath != "" {
		return scratchlab.LoadFile(cfg.configPath)
	}
	return demo.Setting(cfg.demoName)
}
