package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Configure struct {
	TimeLimit        time.Duration                     `yaml:"timeLimit"`
	CompileTimeLimit time.Duration                     `yaml:"compileTimeLimit"`
	DataFilesPath    string                            `yaml:"dataFilesPath"`
	InputFile        string                            `yaml:"inputFile"`
	OutputFile       string                            `yaml:"outputFile"`
	WorkDir          string                            `yaml:"workDir"`
	OmitStringLen    int64                             `yaml:"omitStringLen"`
	Log              LogConfig                         `yaml:"log"`
	MQ               MQConfig                          `yaml:"mq"`
	Languages        map[model.Language]LanguageConfig `yaml:"languages"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"outputPath"`
}

type MQConfig struct {
	Enabled   bool   `yaml:"enabled"`
	URL       string `yaml:"url"`
	QueueName string `yaml:"queueName"`
}

// LanguageConfig describes how to build and start programs of one language.
// An empty Compile means the source is run directly.
type LanguageConfig struct {
	Extensions []string `yaml:"extensions"`
	Compile    string   `yaml:"compile"`
	Run        string   `yaml:"run"`
	CopySource bool     `yaml:"copySource"`
}

func DefaultLanguages() map[model.Language]LanguageConfig {
	return map[model.Language]LanguageConfig{
		model.LangC: {
			Extensions: []string{".c"},
			Compile:    "gcc {src} -O2 -std=c99 -o {bin}",
			Run:        "{bin}",
		},
		model.LangCpp: {
			Extensions: []string{".cpp", ".cc", ".cxx"},
			Compile:    "g++ {src} -O2 -std=c++17 -o {bin}",
			Run:        "{bin}",
		},
		model.LangJava: {
			Extensions: []string{".java"},
			Compile:    "javac {src}",
			Run:        "java -cp {workdir} {class}",
			CopySource: true,
		},
		model.LangPython: {
			Extensions: []string{".py"},
			Run:        "python3 {src}",
		},
	}
}

func Default() *Configure {
	return &Configure{
		TimeLimit:        2 * time.Second,
		CompileTimeLimit: 30 * time.Second,
		DataFilesPath:    "testcases",
		InputFile:        "input.txt",
		OutputFile:       "output.txt",
		WorkDir:          os.TempDir(),
		OmitStringLen:    DefaultOmitStringLen,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		MQ: MQConfig{
			QueueName: "judge.verdicts",
		},
		Languages: DefaultLanguages(),
	}
}

// InitConfig loads the YAML file at filePath on top of the defaults. An empty
// path yields the defaults.
func InitConfig(filePath string) (*Configure, error) {
	conf := Default()
	if filePath != "" {
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			return nil, errors.Wrap(err, "read config file failed")
		}
		if err = yaml.Unmarshal(fileBytes, conf); err != nil {
			return nil, errors.Wrap(err, "unmarshal yaml file failed")
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Configure) Validate() error {
	if c.TimeLimit <= 0 {
		return errors.Errorf("timeLimit must be positive, got %s", c.TimeLimit)
	}
	if c.CompileTimeLimit <= 0 {
		return errors.Errorf("compileTimeLimit must be positive, got %s", c.CompileTimeLimit)
	}
	if c.DataFilesPath == "" {
		return errors.New("dataFilesPath is required")
	}
	if c.InputFile == "" || c.OutputFile == "" {
		return errors.New("inputFile and outputFile are required")
	}
	if c.OmitStringLen <= 0 {
		c.OmitStringLen = DefaultOmitStringLen
	}
	if c.WorkDir == "" {
		c.WorkDir = os.TempDir()
	}
	for lang, lc := range c.Languages {
		if lc.Run == "" {
			return errors.Errorf("language %s: run template is required", lang)
		}
	}
	if c.MQ.Enabled && (c.MQ.URL == "" || c.MQ.QueueName == "") {
		return errors.New("mq.url and mq.queueName are required when mq is enabled")
	}
	return nil
}

// DetectLanguage maps a source file to a configured language by extension.
func (c *Configure) DetectLanguage(sourcePath string) (model.Language, bool) {
	ext := filepath.Ext(sourcePath)
	if ext == "" {
		return "", false
	}
	langs := make([]string, 0, len(c.Languages))
	for lang := range c.Languages {
		langs = append(langs, string(lang))
	}
	sort.Strings(langs)
	for _, lang := range langs {
		for _, e := range c.Languages[model.Language(lang)].Extensions {
			if e == ext {
				return model.Language(lang), true
			}
		}
	}
	return "", false
}

func (c *Configure) ProblemDir(problemID string) string {
	return filepath.Join(c.DataFilesPath, problemID)
}
