package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	EnvTimeLimit = "JUDGE_TIME_LIMIT"
	EnvDataPath  = "JUDGE_DATA_PATH"
	EnvWorkDir   = "JUDGE_WORK_DIR"
	EnvLogLevel  = "JUDGE_LOG_LEVEL"
	EnvMQURL     = "JUDGE_MQ_URL"
)

// LoadEnv reads envFile into the process environment, if it exists, and
// applies the JUDGE_* overrides to c. Variables already set win over the file.
func LoadEnv(c *Configure, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return errors.Wrapf(err, "load %s", envFile)
		}
	}
	return ApplyEnv(c, os.LookupEnv)
}

func ApplyEnv(c *Configure, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTimeLimit); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvTimeLimit)
		}
		c.TimeLimit = d
	}
	if v, ok := lookup(EnvDataPath); ok && v != "" {
		c.DataFilesPath = v
	}
	if v, ok := lookup(EnvWorkDir); ok && v != "" {
		c.WorkDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvMQURL); ok && v != "" {
		c.MQ.URL = v
		c.MQ.Enabled = true
	}
	return c.Validate()
}
