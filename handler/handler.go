package handler

import (
	"context"
	"iter"
	"strings"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Reporter receives progress events of a judging run.
type Reporter interface {
	Compiling()
	Compiled(ok bool)
	Start(total int)
	Advance()
	Done()
}

type NopReporter struct{}

func (NopReporter) Compiling()    {}
func (NopReporter) Compiled(bool) {}
func (NopReporter) Start(int)     {}
func (NopReporter) Advance()      {}
func (NopReporter) Done()         {}

type Submission struct {
	ProblemID  string
	SourcePath string
	Language   model.Language
}

// Judge runs one submission: compile once, then the test cases in order,
// stopping at the first failure.
type Judge struct {
	conf     *config.Configure
	builder  Builder
	runner   Runner
	reporter Reporter
}

func NewJudge(conf *config.Configure, builder Builder, runner Runner, reporter Reporter) *Judge {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Judge{
		conf:     conf,
		builder:  builder,
		runner:   runner,
		reporter: reporter,
	}
}

// New wires the judge with a process runner and the configured compilers.
func New(conf *config.Configure, reporter Reporter) *Judge {
	runner := NewProcessRunner()
	return NewJudge(conf, NewCompiler(conf, runner), runner, reporter)
}

type caseResult struct {
	testCase model.TestCase
	status   model.Status
	exec     model.ExecutionResult
}

// Judge returns the verdict of sub. Compilation errors and malformed problems
// are verdicts, not errors. The scratch directory is removed on every path.
func (j *Judge) Judge(ctx context.Context, sub Submission) (*model.Verdict, error) {
	verdict := &model.Verdict{
		RunID:     uuid.NewString(),
		ProblemID: sub.ProblemID,
		Language:  sub.Language,
	}
	log := util.Logger().With(zap.String("run_id", verdict.RunID), zap.String("problem", sub.ProblemID))

	ws := util.NewWorkspace(j.conf.WorkDir)
	defer ws.Remove()

	j.reporter.Compiling()
	compiled, err := j.builder.Compile(ctx, sub.SourcePath, sub.Language, ws)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}
	j.reporter.Compiled(compiled.Succeed)
	if !compiled.Succeed {
		log.Info("compilation failed")
		verdict.Status = model.StatusCompileError
		verdict.CompileMessage = compiled.ErrMsg
		return verdict, nil
	}

	problem, err := LoadProblem(j.conf, sub.ProblemID)
	if err != nil {
		if errors.Is(err, config.ErrMalformedProblem) {
			log.Warn("malformed problem", zap.Error(err))
			verdict.Status = model.StatusMalformedProblem
			verdict.Message = err.Error()
			return verdict, nil
		}
		return nil, err
	}
	verdict.Total = len(problem.TestCases)

	j.reporter.Start(verdict.Total)
	for res := range j.results(ctx, compiled.Artifact, problem.TestCases) {
		j.reporter.Advance()
		log.Debug("test case finished", zap.Int("index", res.testCase.Index), zap.String("status", res.status.Short()))
		if res.status == model.StatusAccepted {
			verdict.Passed++
			continue
		}
		verdict.Failed++
		switch res.status {
		case model.StatusWrongAnswer:
			verdict.WrongAnswers++
		case model.StatusTimeLimitExceeded:
			verdict.TimeLimitExceeded++
		case model.StatusRuntimeError:
			verdict.RuntimeErrors++
		}
		verdict.Failure = j.failureDetail(res)
		break
	}
	j.reporter.Done()

	verdict.Status = model.StatusAccepted
	if verdict.Failure != nil {
		verdict.Status = verdict.Failure.Status
	}
	log.Info("judging finished",
		zap.String("status", verdict.Status.Short()),
		zap.Int("passed", verdict.Passed),
		zap.Int("total", verdict.Total),
	)
	return verdict, nil
}

// results executes test cases lazily; the caller stops the iteration to skip
// the remaining ones.
func (j *Judge) results(ctx context.Context, inv model.Invocation, testCases []model.TestCase) iter.Seq[caseResult] {
	return func(yield func(caseResult) bool) {
		for _, testCase := range testCases {
			exec := j.runner.Run(ctx, inv, testCase.Input, j.conf.TimeLimit)
			res := caseResult{
				testCase: testCase,
				status:   classify(exec, testCase.Output),
				exec:     exec,
			}
			if !yield(res) {
				return
			}
		}
	}
}

// classify checks TLE and RTE before the output is ever compared.
func classify(res model.ExecutionResult, expected string) model.Status {
	switch {
	case res.Kind == model.TimedOut:
		return model.StatusTimeLimitExceeded
	case res.ExitCode != 0:
		return model.StatusRuntimeError
	case !CheckOutput(res.Stdout, expected):
		return model.StatusWrongAnswer
	}
	return model.StatusAccepted
}

func (j *Judge) failureDetail(res caseResult) *model.FailureDetail {
	return &model.FailureDetail{
		Index:    res.testCase.Index,
		Status:   res.status,
		Input:    strings.TrimRight(res.testCase.Input, "\n"),
		Expected: strings.TrimRight(res.testCase.Output, "\n"),
		Got:      strings.TrimRight(res.exec.Stdout, "\n"),
		Stderr:   util.LimitString(res.exec.Stderr, j.conf.OmitStringLen),
	}
}
