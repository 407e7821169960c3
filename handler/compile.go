package handler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/google/shlex"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const unsupportedLanguageMsg = "Unsupported language"
const compileTimeoutMsg = "compilation time limit exceeded"

// Builder turns a source file into something the Runner can execute.
type Builder interface {
	Compile(ctx context.Context, sourcePath string, lang model.Language, ws *util.Workspace) (*model.CompileResult, error)
}

// Compiler dispatches on the configured language table. The build command runs
// through the same Runner as the tests, bounded by the compile time limit.
type Compiler struct {
	languages map[model.Language]config.LanguageConfig
	runner    Runner
	timeLimit time.Duration
	omitLen   int64
}

func NewCompiler(conf *config.Configure, runner Runner) *Compiler {
	return &Compiler{
		languages: conf.Languages,
		runner:    runner,
		timeLimit: conf.CompileTimeLimit,
		omitLen:   conf.OmitStringLen,
	}
}

// ExecutableName is the scratch binary produced by native compilers.
func ExecutableName() string {
	return "a.out"
}

// Compile builds sourcePath inside ws. A build failure is reported through
// the returned CompileResult; the error is only for judge-side failures.
func (c *Compiler) Compile(ctx context.Context, sourcePath string, lang model.Language, ws *util.Workspace) (*model.CompileResult, error) {
	lc, ok := c.languages[lang]
	if !ok {
		return &model.CompileResult{
			Succeed: false,
			ErrMsg:  &model.OmitString{S: unsupportedLanguageMsg},
		}, nil
	}
	if err := ws.Ensure(); err != nil {
		return nil, err
	}

	src, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, errors.Wrap(err, "resolve source path")
	}
	base := filepath.Base(src)
	if lc.CopySource {
		dst := ws.Join(base)
		if err := util.SafeCopy(src, dst); err != nil {
			return nil, errors.Wrap(err, "cannot copy source into work directory")
		}
		src = dst
	}
	vars := map[string]string{
		"src":     src,
		"bin":     ws.Join(ExecutableName()),
		"workdir": ws.Path,
		"class":   strings.TrimSuffix(base, filepath.Ext(base)),
	}

	if lc.Compile != "" {
		args, err := buildCommand(lc.Compile, vars)
		if err != nil {
			return nil, errors.Wrapf(err, "language %s: compile template", lang)
		}
		util.InfoLog("compiling", nil, zap.String("language", string(lang)), zap.Strings("args", args))
		res := c.runner.Run(ctx, model.Invocation{Args: args, Dir: ws.Path}, "", c.timeLimit)
		if diag, failed := compileDiagnostic(res); failed {
			return &model.CompileResult{
				Succeed: false,
				ErrMsg:  util.LimitString(diag, c.omitLen),
			}, nil
		}
	}

	runArgs, err := buildCommand(lc.Run, vars)
	if err != nil {
		return nil, errors.Wrapf(err, "language %s: run template", lang)
	}
	return &model.CompileResult{
		Succeed:  true,
		Artifact: model.Invocation{Args: runArgs, Dir: ws.Path},
	}, nil
}

func compileDiagnostic(res model.ExecutionResult) (string, bool) {
	if res.Kind == model.TimedOut {
		return compileTimeoutMsg, true
	}
	if res.ExitCode == 0 {
		return "", false
	}
	switch {
	case res.Stderr != "":
		return res.Stderr, true
	case res.Stdout != "":
		return res.Stdout, true
	}
	return fmt.Sprintf("compiler exited with code %d", res.ExitCode), true
}

// buildCommand splits tpl into fields first and substitutes {name}
// placeholders afterwards, so paths containing spaces stay one argument.
func buildCommand(tpl string, vars map[string]string) ([]string, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, errors.New("command template is required")
	}
	fields, err := shlex.Split(tpl)
	if err != nil {
		return nil, errors.Wrap(err, "parse command template failed")
	}
	if len(fields) == 0 {
		return nil, errors.New("command is empty after expansion")
	}
	for i, field := range fields {
		for name, value := range vars {
			field = strings.ReplaceAll(field, "{"+name+"}", value)
		}
		fields[i] = field
	}
	return fields, nil
}
