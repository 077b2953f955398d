package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"examplan/internal/model"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env    string
	Log    LogConfig
	Engine EngineConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// EngineConfig mirrors model.Config so deployments can tune both engines
// without recompiling.
type EngineConfig struct {
	MaxDeptsPerSubjectName int
	SeatsPerBench          int
	DefaultHallCapacity    int
	BenchesPerHall         int
	SearchBudget           int
	SearchHorizonDays      int
	SingleDeptFallback     bool
}

// Load reads configuration from the environment and an optional env file
// (".env" by default).
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	envFile := ".env"
	if len(envFiles) > 0 {
		envFile = envFiles[0]
	}

	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	// A missing env file is fine; the environment still applies.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Engine = EngineConfig{
		MaxDeptsPerSubjectName: v.GetInt("MAX_DEPTS_PER_SUBJECT_NAME"),
		SeatsPerBench:          v.GetInt("SEATS_PER_BENCH"),
		DefaultHallCapacity:    v.GetInt("DEFAULT_HALL_CAPACITY"),
		BenchesPerHall:         v.GetInt("BENCHES_PER_HALL"),
		SearchBudget:           v.GetInt("SEARCH_BUDGET"),
		SearchHorizonDays:      v.GetInt("SEARCH_HORIZON_DAYS"),
		SingleDeptFallback:     v.GetBool("SINGLE_DEPT_FALLBACK"),
	}

	return cfg, nil
}

// ModelConfig converts the deployment view into the engines' Config.
func (engine EngineConfig) ModelConfig() model.Config {
	policy := model.RejectRemainder
	if engine.SingleDeptFallback {
		policy = model.PlaceRemainder
	}
	return model.Config{
		MaxDeptsPerSubjectName: engine.MaxDeptsPerSubjectName,
		SeatsPerBench:          engine.SeatsPerBench,
		DefaultHallCapacity:    engine.DefaultHallCapacity,
		BenchesPerHall:         engine.BenchesPerHall,
		SearchBudget:           engine.SearchBudget,
		SearchHorizonDays:      engine.SearchHorizonDays,
		SingleDeptPolicy:       policy,
	}
}

func setDefaults(v *viper.Viper) {
	defaults := model.DefaultConfig()

	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("MAX_DEPTS_PER_SUBJECT_NAME", defaults.MaxDeptsPerSubjectName)
	v.SetDefault("SEATS_PER_BENCH", defaults.SeatsPerBench)
	v.SetDefault("DEFAULT_HALL_CAPACITY", defaults.DefaultHallCapacity)
	v.SetDefault("BENCHES_PER_HALL", defaults.BenchesPerHall)
	v.SetDefault("SEARCH_BUDGET", defaults.SearchBudget)
	v.SetDefault("SEARCH_HORIZON_DAYS", defaults.SearchHorizonDays)
	v.SetDefault("SINGLE_DEPT_FALLBACK", true)
}
