package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/handler"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/report"
	"github.com/Atharva062006/OfflineJudge/util"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("judge", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.String("c", "", "the path of configure file")
	envFile := flags.String("env", ".env", "the path of env file")
	asJSON := flags.Bool("json", false, "print the verdict as JSON")
	verbose := flags.Bool("v", false, "debug logging")
	list := flags.Bool("list", false, "list available problems and exit")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if !*list && flags.NArg() != 2 {
		fmt.Fprintln(stdout, config.ErrUsage)
		return 1
	}

	conf, err := Init(*configFile, *envFile, *verbose)
	if err != nil {
		fmt.Fprintln(stderr, "[FAILED] init:", err)
		return 1
	}
	defer util.SyncLogger()

	if *list {
		problems, err := handler.ListProblems(conf)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		for _, p := range problems {
			fmt.Fprintln(stdout, p)
		}
		return 0
	}

	problemID, source := flags.Arg(0), flags.Arg(1)
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	lang, ok := conf.DetectLanguage(source)
	if !ok {
		fmt.Fprintln(stdout, "Unsupported file type")
		return 1
	}

	var reporter handler.Reporter = handler.NopReporter{}
	if !*asJSON {
		reporter = report.NewProgress(stdout, terminalBar(stderr))
	}
	judge := handler.New(conf, reporter)
	verdict, err := judge.Judge(context.Background(), handler.Submission{
		ProblemID:  problemID,
		SourcePath: source,
		Language:   lang,
	})
	if err != nil {
		util.ErrorLog(err, "Judge()")
		fmt.Fprintln(stderr, "[FAILED] judge:", err)
		return 1
	}

	if *asJSON {
		if err := report.WriteJSON(stdout, verdict); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	} else {
		report.Render(stdout, verdict)
	}
	publish(conf, verdict, stderr)
	return 0
}

func publish(conf *config.Configure, verdict *model.Verdict, stderr io.Writer) {
	publisher, err := InitMQ(conf)
	if err != nil {
		fmt.Fprintln(stderr, "[WARN] verdict not published:", err)
		return
	}
	if publisher == nil {
		return
	}
	defer publisher.Close()
	if err := publisher.Publish(verdict); err != nil {
		fmt.Fprintln(stderr, "[WARN] verdict not published:", err)
	}
}

func terminalBar(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok {
		return report.TerminalBar(f)
	}
	return nil
}
