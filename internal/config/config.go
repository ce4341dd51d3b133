package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Game      Game      `yaml:"game" json:"game"`
	Rules     Rules     `yaml:"rules" json:"rules"`
	Generator Generator `yaml:"generator" json:"generator"`
	Server    Server    `yaml:"server" json:"server"`
}

// Game holds round pacing and scoring.
type Game struct {
	MaxMistakes         int           `yaml:"max_mistakes" json:"max_mistakes"`
	ScorePerLevel       int           `yaml:"score_per_level" json:"score_per_level"`
	BaseObjects         int           `yaml:"base_objects" json:"base_objects"`
	ObjectsLevelDivisor float64       `yaml:"objects_level_divisor" json:"objects_level_divisor"`
	MaxObjects          int           `yaml:"max_objects" json:"max_objects"`
	TimerBase           time.Duration `yaml:"timer_base" json:"timer_base"`
	TimerDecayPerLevel  time.Duration `yaml:"timer_decay_per_level" json:"timer_decay_per_level"`
	TimerMin            time.Duration `yaml:"timer_min" json:"timer_min"`
	TickInterval        time.Duration `yaml:"tick_interval" json:"tick_interval"`
	// GenerationRetries is the number of extra sampling tries a rule set gets
	// before its newest pending rule is rolled back.
	GenerationRetries int `yaml:"generation_retries" json:"generation_retries"`
}

// Rules tunes the rule factory.
type Rules struct {
	NegationMinLevel    int     `yaml:"negation_min_level" json:"negation_min_level"`
	NegationProbability float64 `yaml:"negation_probability" json:"negation_probability"`
	GreaterThanMin      int     `yaml:"greater_than_min" json:"greater_than_min"`
	GreaterThanMax      int     `yaml:"greater_than_max" json:"greater_than_max"`
	LessThanMin         int     `yaml:"less_than_min" json:"less_than_min"`
	LessThanMax         int     `yaml:"less_than_max" json:"less_than_max"`
}

// Generator bounds rejection sampling.
type Generator struct {
	ValidAttempts      int `yaml:"valid_attempts" json:"valid_attempts"`
	DistractorAttempts int `yaml:"distractor_attempts" json:"distractor_attempts"`
}

type Server struct {
	Addr        string `yaml:"addr" json:"addr"`
	LogLevel    string `yaml:"log_level" json:"log_level"`
	MaxSessions int    `yaml:"max_sessions" json:"max_sessions"`
	// Seed fixes the RNG of new sessions when non-zero.
	Seed            uint64  `yaml:"seed" json:"seed"`
	EventsPerSecond float64 `yaml:"events_per_second" json:"events_per_second"`
	EventBurst      int     `yaml:"event_burst" json:"event_burst"`
}

func Default() Config {
	return Config{
		Game: Game{
			MaxMistakes:         3,
			ScorePerLevel:       100,
			BaseObjects:         5,
			ObjectsLevelDivisor: 1.5,
			MaxObjects:          20,
			TimerBase:           15 * time.Second,
			TimerDecayPerLevel:  500 * time.Millisecond,
			TimerMin:            5 * time.Second,
			TickInterval:        100 * time.Millisecond,
			GenerationRetries:   1,
		},
		Rules: Rules{
			NegationMinLevel:    2,
			NegationProbability: 0.4,
			GreaterThanMin:      1,
			GreaterThanMax:      5,
			LessThanMin:         5,
			LessThanMax:         9,
		},
		Generator: Generator{
			ValidAttempts:      500,
			DistractorAttempts: 50,
		},
		Server: Server{
			Addr:            ":8080",
			LogLevel:        "info",
			MaxSessions:     1024,
			EventsPerSecond: 20,
			EventBurst:      10,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	g := c.Game
	if g.MaxMistakes < 1 {
		errs = append(errs, errors.New("game.max_mistakes must be >= 1"))
	}
	if g.BaseObjects < 1 || g.MaxObjects < g.BaseObjects {
		errs = append(errs, errors.New("game.base_objects must be >= 1 and <= game.max_objects"))
	}
	if g.ObjectsLevelDivisor <= 0 {
		errs = append(errs, errors.New("game.objects_level_divisor must be > 0"))
	}
	if g.TimerMin <= 0 || g.TimerBase < g.TimerMin {
		errs = append(errs, errors.New("game.timer_min must be > 0 and <= game.timer_base"))
	}
	if g.TickInterval <= 0 {
		errs = append(errs, errors.New("game.tick_interval must be > 0"))
	}
	if g.GenerationRetries < 0 {
		errs = append(errs, errors.New("game.generation_retries must be >= 0"))
	}
	r := c.Rules
	if r.NegationProbability < 0 || r.NegationProbability > 1 {
		errs = append(errs, errors.New("rules.negation_probability must be within [0,1]"))
	}
	if r.GreaterThanMin > r.GreaterThanMax || r.LessThanMin > r.LessThanMax {
		errs = append(errs, errors.New("rules threshold ranges are inverted"))
	}
	if c.Generator.ValidAttempts < 1 || c.Generator.DistractorAttempts < 1 {
		errs = append(errs, errors.New("generator attempts must be >= 1"))
	}
	if c.Server.MaxSessions < 1 {
		errs = append(errs, errors.New("server.max_sessions must be >= 1"))
	}
	return errors.Join(errs...)
}
