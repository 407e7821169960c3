package main

import (
	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/mq"
	"github.com/Atharva062006/OfflineJudge/util"
	"go.uber.org/zap"
)

// Init loads the configuration, applies .env overrides and starts logging.
func Init(configFile string, envFile string, verbose bool) (*config.Configure, error) {
	conf, err := config.InitConfig(configFile)
	if err != nil {
		return nil, err
	}
	if err = config.LoadEnv(conf, envFile); err != nil {
		return nil, err
	}
	if verbose {
		conf.Log.Level = "debug"
	}
	if err = util.InitLogger(conf.Log); err != nil {
		return nil, err
	}
	util.DebugLog("init config successfully", nil,
		zap.Duration("time_limit", conf.TimeLimit),
		zap.String("data_files_path", conf.DataFilesPath),
		zap.String("work_dir", conf.WorkDir),
	)
	return conf, nil
}

// InitMQ returns nil when publishing is disabled.
func InitMQ(conf *config.Configure) (*mq.Publisher, error) {
	if !conf.MQ.Enabled {
		return nil, nil
	}
	return mq.Dial(conf.MQ)
}
