package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/peerclass/peerclass/core"
	"github.com/peerclass/peerclass/core/progress"
	"github.com/peerclass/peerclass/core/user"
	"github.com/peerclass/peerclass/core/workspace"
	restapi "github.com/peerclass/peerclass/storage/rest"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

// platformClient is the slice of restapi.Client the CLI needs; tests
// swap in a fake over an in-memory backend.
type platformClient interface {
	Login(ctx context.Context, username, password string) (user.User, error)
	Repositories() workspace.Repositories
}

type commandLine struct {
	conf      *core.Config
	out       io.Writer
	newClient func() platformClient // mockable
}

func newCommandLine(conf *core.Config, out io.Writer) *commandLine {
	return &commandLine{
		conf:      conf,
		out:       out,
		newClient: func() platformClient { return restapi.NewClient(conf) },
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  tasks -username USERNAME [-status notStarted|pending|completed] - list my tasks")
	fmt.Fprintln(cli.out, "  reviews -username USERNAME - list submissions awaiting my approval")
	fmt.Fprintln(cli.out, "  progress -username USERNAME - per-course progress")
	fmt.Fprintln(cli.out, "  courses -username USERNAME [-search TERM] - list or search courses")
	fmt.Fprintln(cli.out, "  complete -username USERNAME -task ID - submit my work for a task")
	fmt.Fprintln(cli.out, "  approve -username USERNAME -completion ID - approve a submission")
	fmt.Fprintln(cli.out, "The password is prompted next.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	tasksCmd := flag.NewFlagSet("tasks", flag.ExitOnError)
	tasksUname := tasksCmd.String("username", "", "The user's username or email.")
	tasksStatus := tasksCmd.String("status", "", "Only list tasks in this status.")

	reviewsCmd := flag.NewFlagSet("reviews", flag.ExitOnError)
	reviewsUname := reviewsCmd.String("username", "", "The user's username or email.")

	progressCmd := flag.NewFlagSet("progress", flag.ExitOnError)
	progressUname := progressCmd.String("username", "", "The user's username or email.")

	coursesCmd := flag.NewFlagSet("courses", flag.ExitOnError)
	coursesUname := coursesCmd.String("username", "", "The user's username or email.")
	coursesSearch := coursesCmd.String("search", "", "Fuzzy-match courses against this term.")

	completeCmd := flag.NewFlagSet("complete", flag.ExitOnError)
	completeUname := completeCmd.String("username", "", "The user's username or email.")
	completeTask := completeCmd.Int("task", 0, "The task to submit work for.")

	approveCmd := flag.NewFlagSet("approve", flag.ExitOnError)
	approveUname := approveCmd.String("username", "", "The user's username or email.")
	approveCompletion := approveCmd.Int("completion", 0, "The submission to approve.")

	ctx := context.Background()

	switch args[1] {
	case "tasks":
		if err := tasksCmd.Parse(args[2:]); err != nil {
			return err
		}
		status := progress.Status(*tasksStatus)
		if *tasksUname == "" || (*tasksStatus != "" && !status.Valid()) {
			tasksCmd.Usage()
			return errHelp
		}
		ws, err := cli.openWorkspace(ctx, tasksCmd, *tasksUname)
		if err != nil {
			return err
		}
		return cli.printTasks(ws, status)
	case "reviews":
		if err := reviewsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *reviewsUname == "" {
			reviewsCmd.Usage()
			return errHelp
		}
		ws, err := cli.openWorkspace(ctx, reviewsCmd, *reviewsUname)
		if err != nil {
			return err
		}
		return cli.printReviews(ws)
	case "progress":
		if err := progressCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *progressUname == "" {
			progressCmd.Usage()
			return errHelp
		}
		ws, err := cli.openWorkspace(ctx, progressCmd, *progressUname)
		if err != nil {
			return err
		}
		return cli.printProgress(ws)
	case "courses":
		if err := coursesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *coursesUname == "" {
			coursesCmd.Usage()
			return errHelp
		}
		ws, err := cli.openWorkspace(ctx, coursesCmd, *coursesUname)
		if err != nil {
			return err
		}
		return cli.printCourses(ws, *coursesSearch)
	case "complete":
		if err := completeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *completeUname == "" || *completeTask == 0 {
			completeCmd.Usage()
			return errHelp
		}
		ws, err := cli.openWorkspace(ctx, completeCmd, *completeUname)
		if err != nil {
			return err
		}
		if err := ws.Complete(ctx, *completeTask); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "submitted; awaiting approval")
		return nil
	case "approve":
		if err := approveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *approveUname == "" || *approveCompletion == 0 {
			approveCmd.Usage()
			return errHelp
		}
		ws, err := cli.openWorkspace(ctx, approveCmd, *approveUname)
		if err != nil {
			return err
		}
		if err := ws.Approve(ctx, *approveCompletion); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "approved")
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

// openWorkspace prompts for the password, logs in and loads every
// collection for the session.
func (cli *commandLine) openWorkspace(ctx context.Context, cmd *flag.FlagSet, uname string) (*workspace.Workspace, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return nil, err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return nil, errHelp
	}

	client := cli.newClient()
	usr, err := client.Login(ctx, uname, string(pwd))
	if err != nil {
		return nil, err
	}
	ws := workspace.New(usr, client.Repositories())
	if err = ws.RefreshAll(ctx); err != nil {
		return nil, err
	}
	return ws, nil
}
