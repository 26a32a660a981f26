package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alzaabi555/rased/internal/app"
	"github.com/alzaabi555/rased/internal/backup"
)

func main() {
	os.Exit(run())
}

const usage = `usage: rased [-config FILE] [-prefs FILE] [command]

With no command the terminal interface starts.

commands:
  backup [-o FILE]                          write a backup of all data
  restore -yes FILE                         replace all data with a backup
  import-roster -class NAME FILE            add students from an xlsx workbook
  export-grades -class NAME [-o FILE]       write the gradebook as xlsx
  export-attendance -class NAME [-o FILE] [-dates D1,D2]
                                            write the attendance register as xlsx
  ping                                      check the ministry service
  logs [-n LINES]                           print the end of the log file
  activate [CODE]                           show the device id or activate it
  reset -confirm WORD                       delete all data
`

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}

	var err error
	if flag.NArg() == 0 {
		err = app.Run(ctx, opts)
	} else {
		err = runCommand(ctx, opts, flag.Arg(0), flag.Args()[1:])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rased: %v\n", err)
		return 1
	}
	return 0
}

type command func(ctx context.Context, env *app.Env, args []string) error

var commands = map[string]command{
	"backup":            backupCmd,
	"restore":           restoreCmd,
	"import-roster":     importRosterCmd,
	"export-grades":     exportGradesCmd,
	"export-attendance": exportAttendanceCmd,
	"ping":              pingCmd,
	"logs":              logsCmd,
	"reset":             resetCmd,
}

func runCommand(ctx context.Context, opts app.Options, name string, args []string) error {
	if name == "activate" {
		return activateCmd(opts.PrefsPath, args)
	}
	cmd, ok := commands[name]
	if !ok {
		flag.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
	opts.LogOut = os.Stderr
	opts.Console = true
	env, err := app.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	return cmd(ctx, env, args)
}

func backupCmd(_ context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	out := fs.String("o", "", "output file (default: dated name in the current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	now := time.Now()
	path := *out
	if path == "" {
		path = backup.FileName(now)
	}
	if err := writeFile(path, func(w io.Writer) error { return env.Backup(w, now) }); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func restoreCmd(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm that all current data is replaced")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("restore: backup file is required")
	}
	if !*yes {
		return errors.New("restore replaces all data; pass -yes to continue")
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	snap, err := env.Restore(ctx, f)
	if err != nil {
		return err
	}
	fmt.Printf("restored %d students in %d classes\n", len(snap.Students), len(snap.Classes))
	return nil
}

func importRosterCmd(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("import-roster", flag.ContinueOnError)
	class := fs.String("class", "", "class to add the students to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("import-roster: workbook file is required")
	}
	if strings.TrimSpace(*class) == "" {
		return errors.New("import-roster: -class is required")
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	res, err := env.ImportRoster(ctx, f, *class)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d students into %s (%d rows skipped)\n", len(res.Students), strings.TrimSpace(*class), res.Skipped)
	return nil
}

func exportGradesCmd(_ context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("export-grades", flag.ContinueOnError)
	class := fs.String("class", "", "class to export")
	out := fs.String("o", "", "output file (default: grades-<class>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path := outputPath(*out, "grades", *class)
	if err := writeFile(path, func(w io.Writer) error { return env.ExportGrades(w, *class) }); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func exportAttendanceCmd(_ context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("export-attendance", flag.ContinueOnError)
	class := fs.String("class", "", "class to export")
	out := fs.String("o", "", "output file (default: attendance-<class>.xlsx)")
	dates := fs.String("dates", "", "comma separated dates, YYYY-MM-DD (default: every marked date)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var list []string
	for _, d := range strings.Split(*dates, ",") {
		if d = strings.TrimSpace(d); d != "" {
			list = append(list, d)
		}
	}
	path := outputPath(*out, "attendance", *class)
	if err := writeFile(path, func(w io.Writer) error { return env.ExportAttendance(w, *class, list) }); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func pingCmd(ctx context.Context, env *app.Env, _ []string) error {
	conn, err := env.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s reachable (HTTP %d)\n", env.Config.Ministry.BaseURL, conn.Status)
	return nil
}

func logsCmd(_ context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	n := fs.Int("n", 50, "number of lines")
	if err := fs.Parse(args); err != nil {
		return err
	}
	entries, err := env.Logs(*n)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Println(e)
	}
	return nil
}

func resetCmd(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	confirm := fs.String("confirm", "", "type "+app.ResetConfirmation+" to delete all data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := env.Reset(ctx, *confirm); err != nil {
		if errors.Is(err, app.ErrNotConfirmed) {
			return fmt.Errorf("%w: pass -confirm %s", err, app.ResetConfirmation)
		}
		return err
	}
	fmt.Println("all data deleted")
	return nil
}

func activateCmd(prefsPath string, args []string) error {
	if len(args) == 0 {
		p, err := app.Activation(prefsPath)
		if err != nil {
			return err
		}
		state := "not activated"
		if p.Activated {
			state = "activated"
		}
		fmt.Printf("device %s (%s)\n", p.DeviceID, state)
		return nil
	}
	p, err := app.Activate(prefsPath, args[0])
	if err != nil {
		return fmt.Errorf("device %s: %w", p.DeviceID, err)
	}
	fmt.Printf("device %s activated\n", p.DeviceID)
	return nil
}

func outputPath(out, kind, class string) string {
	if out != "" {
		return out
	}
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '-'
		}
		return r
	}, strings.TrimSpace(class))
	return fmt.Sprintf("%s-%s.xlsx", kind, name)
}

// writeFile creates path and removes it again when write fails.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
