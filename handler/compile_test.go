package handler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/google/go-cmp/cmp"
)

type fakeRunner struct {
	results []model.ExecutionResult
	invs    []model.Invocation
	inputs  []string
}

func (f *fakeRunner) Run(ctx context.Context, inv model.Invocation, input string, timeLimit time.Duration) model.ExecutionResult {
	f.invs = append(f.invs, inv)
	f.inputs = append(f.inputs, input)
	idx := len(f.invs) - 1
	if idx < len(f.results) {
		return f.results[idx]
	}
	return model.ExecutionResult{}
}

func newTestConfig(t *testing.T) *config.Configure {
	t.Helper()
	conf := config.Default()
	conf.WorkDir = t.TempDir()
	conf.DataFilesPath = t.TempDir()
	return conf
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestCompileUnsupportedLanguage(t *testing.T) {
	conf := newTestConfig(t)
	runner := &fakeRunner{}
	ws := util.NewWorkspace(conf.WorkDir)
	res, err := NewCompiler(conf, runner).Compile(context.Background(), "main.rs", "rust", ws)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Succeed || res.ErrMsg.String() != "Unsupported language" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(runner.invs) != 0 {
		t.Fatalf("no process should be spawned, got %d", len(runner.invs))
	}
}

func TestCompileNativeCommandLine(t *testing.T) {
	conf := newTestConfig(t)
	src := writeSource(t, "main.cpp", "int main() { return 0; }")
	runner := &fakeRunner{results: []model.ExecutionResult{{Kind: model.Completed}}}
	ws := util.NewWorkspace(conf.WorkDir)
	defer ws.Remove()

	res, err := NewCompiler(conf, runner).Compile(context.Background(), src, model.LangCpp, ws)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !res.Succeed {
		t.Fatalf("expected success, got %+v", res.ErrMsg)
	}
	bin := filepath.Join(ws.Path, "a.out")
	wantCompile := []string{"g++", src, "-O2", "-std=c++17", "-o", bin}
	if diff := cmp.Diff(wantCompile, runner.invs[0].Args); diff != "" {
		t.Fatalf("compile args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.Invocation{Args: []string{bin}, Dir: ws.Path}, res.Artifact); diff != "" {
		t.Fatalf("artifact mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(ws.Path); err != nil {
		t.Fatalf("work directory not created: %v", err)
	}
}

func TestCompileFailureDiagnostic(t *testing.T) {
	conf := newTestConfig(t)
	src := writeSource(t, "main.c", "int main() { return 0 }")
	cases := []struct {
		name   string
		result model.ExecutionResult
		want   string
	}{
		{"stderr", model.ExecutionResult{ExitCode: 1, Stderr: "main.c:1: error: expected ';'\n"}, "main.c:1: error: expected ';'\n"},
		{"no output", model.ExecutionResult{ExitCode: 4}, "compiler exited with code 4"},
		{"timeout", model.ExecutionResult{Kind: model.TimedOut}, compileTimeoutMsg},
	}
	for _, c := range cases {
		runner := &fakeRunner{results: []model.ExecutionResult{c.result}}
		ws := util.NewWorkspace(conf.WorkDir)
		res, err := NewCompiler(conf, runner).Compile(context.Background(), src, model.LangC, ws)
		ws.Remove()
		if err != nil {
			t.Fatalf("%s: Compile: %v", c.name, err)
		}
		if res.Succeed || res.ErrMsg.String() != c.want {
			t.Errorf("%s: got %+v, want diagnostic %q", c.name, res.ErrMsg, c.want)
		}
	}
}

func TestCompileDiagnosticIsTruncated(t *testing.T) {
	conf := newTestConfig(t)
	conf.OmitStringLen = 8
	src := writeSource(t, "main.c", "")
	runner := &fakeRunner{results: []model.ExecutionResult{{ExitCode: 1, Stderr: "0123456789abcdef"}}}
	ws := util.NewWorkspace(conf.WorkDir)
	defer ws.Remove()
	res, err := NewCompiler(conf, runner).Compile(context.Background(), src, model.LangC, ws)
	if err != nil {
		t.Fatal(err)
	}
	if res.ErrMsg.S != "01234567" || res.ErrMsg.OmitSize != 8 {
		t.Fatalf("unexpected %+v", res.ErrMsg)
	}
}

func TestCompileBytecodeCopiesSource(t *testing.T) {
	conf := newTestConfig(t)
	src := writeSource(t, "Main.java", "public class Main {}")
	runner := &fakeRunner{results: []model.ExecutionResult{{Kind: model.Completed}}}
	ws := util.NewWorkspace(conf.WorkDir)
	defer ws.Remove()

	res, err := NewCompiler(conf, runner).Compile(context.Background(), src, model.LangJava, ws)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	copied := ws.Join("Main.java")
	if _, err := os.Stat(copied); err != nil {
		t.Fatalf("source not copied: %v", err)
	}
	if diff := cmp.Diff([]string{"javac", copied}, runner.invs[0].Args); diff != "" {
		t.Fatalf("compile args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"java", "-cp", ws.Path, "Main"}, res.Artifact.Args); diff != "" {
		t.Fatalf("run args mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileInterpretedSkipsBuild(t *testing.T) {
	conf := newTestConfig(t)
	src := writeSource(t, "solve.py", "print(input())")
	runner := &fakeRunner{}
	ws := util.NewWorkspace(conf.WorkDir)
	defer ws.Remove()

	res, err := NewCompiler(conf, runner).Compile(context.Background(), src, model.LangPython, ws)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(runner.invs) != 0 {
		t.Fatalf("interpreted language must not invoke a compiler")
	}
	if diff := cmp.Diff([]string{"python3", src}, res.Artifact.Args); diff != "" {
		t.Fatalf("run args mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileMissingCompilerBinary(t *testing.T) {
	conf := newTestConfig(t)
	conf.Languages["ghost"] = config.LanguageConfig{
		Extensions: []string{".ghost"},
		Compile:    "no-such-compiler-for-judge {src} -o {bin}",
		Run:        "{bin}",
	}
	src := writeSource(t, "main.ghost", "")
	ws := util.NewWorkspace(conf.WorkDir)
	defer ws.Remove()

	res, err := NewCompiler(conf, NewProcessRunner()).Compile(context.Background(), src, "ghost", ws)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Succeed || res.ErrMsg.String() == "" {
		t.Fatalf("expected a diagnostic, got %+v", res)
	}
}

func TestCompileAndRunCpp(t *testing.T) {
	if _, err := exec.LookPath("g++"); err != nil {
		t.Skip("g++ not available")
	}
	conf := newTestConfig(t)
	src := writeSource(t, "sum.cpp", "#include <cstdio>\nint main(){int a,b;scanf(\"%d %d\",&a,&b);printf(\"%d\\n\",a+b);return 0;}\n")
	runner := NewProcessRunner()
	ws := util.NewWorkspace(conf.WorkDir)
	defer ws.Remove()

	res, err := NewCompiler(conf, runner).Compile(context.Background(), src, model.LangCpp, ws)
	if err != nil || !res.Succeed {
		t.Fatalf("Compile: %v %+v", err, res.ErrMsg)
	}
	out := runner.Run(context.Background(), res.Artifact, "3 4\n", 5*time.Second)
	if !out.Succeed() || !CheckOutput(out.Stdout, "7\n") {
		t.Fatalf("unexpected run result %+v", out)
	}
}

func TestBuildCommandKeepsPathsWhole(t *testing.T) {
	args, err := buildCommand("g++ {src} -o {bin}", map[string]string{
		"src": "/tmp/my dir/a.cpp",
		"bin": "/tmp/work/a.out",
	})
	if err != nil {
		t.Fatalf("buildCommand: %v", err)
	}
	if diff := cmp.Diff([]string{"g++", "/tmp/my dir/a.cpp", "-o", "/tmp/work/a.out"}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if _, err := buildCommand("   ", nil); err == nil {
		t.Fatal("expected error for blank template")
	}
	if _, err := buildCommand(`sh -c "unterminated`, nil); err == nil {
		t.Fatal("expected error for bad quoting")
	}
}
