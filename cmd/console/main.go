package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	v1 "github.com/cloudscheduler/console/api/v1"
	"github.com/cloudscheduler/console/internal/console"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
)

func main() {
	var (
		addr     = flag.String("addr", "http://localhost:8888", "console server address")
		username = flag.String("username", "", "login username")
		password = flag.String("password", "", "login password")
	)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli, err := console.NewClient(*addr)
	if err != nil {
		fatal(err)
	}
	if *username != "" {
		if _, err := cli.Login(ctx, *username, *password); err != nil {
			fatal(err)
		}
		defer cli.Logout(context.Background())
	}

	switch args[0] {
	case "list":
		err = list(ctx, cli, pageArg(args))
	case "watch":
		err = watch(ctx, cli, pageArg(args))
	case "get":
		err = get(ctx, cli, uuidArg(args))
	case "create":
		err = create(ctx, cli, uuidArg(args))
	case "delete":
		err = remove(ctx, cli, uuidArg(args))
	case "settings":
		err = listSettings(ctx, cli, pageArg(args))
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: console [flags] <command> [args]

commands:
  list [page]        list tasks
  watch [page]       follow the task list
  get <task_id>      show task detail and log
  create <settings_id>  schedule a task from a settings template
  delete <task_id>   delete a task
  settings [page]    list task settings templates

flags:`)
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "console:", err)
	os.Exit(1)
}

func pageArg(args []string) int {
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}

func uuidArg(args []string) string {
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	return args[1]
}

func list(ctx context.Context, cli *console.Client, page int) error {
	payload, err := cli.ListTasks(ctx, page)
	if err != nil {
		return err
	}
	printTasks(payload)
	return nil
}

func watch(ctx context.Context, cli *console.Client, page int) error {
	w := console.NewWatcher(cli, cli,
		console.WithOnUpdate(func(p *v1.TaskListPayload) {
			fmt.Print("\033[H\033[2J")
			printTasks(p)
		}),
		console.WithOnError(func(err error) {
			fmt.Fprintln(os.Stderr, "poll:", err)
		}),
	)
	w.SetPage(ctx, page)
	w.Start(ctx)
	<-ctx.Done()
	w.Stop()
	return nil
}

func get(ctx context.Context, cli *console.Client, taskUUID string) error {
	task, err := cli.GetTask(ctx, taskUUID)
	if err != nil {
		return err
	}
	fmt.Printf("task:     %s\n", task.UUID)
	fmt.Printf("settings: %s (%s)\n", task.Settings.Name, task.Settings.UUID)
	fmt.Printf("user:     %s\n", task.User)
	fmt.Printf("status:   %s\n", statusLabel(task.Status))
	fmt.Printf("created:  %s\n", task.CreateTime)
	if task.ExitCode != nil {
		fmt.Printf("exit:     %d\n", *task.ExitCode)
	}
	if task.Log != "" {
		fmt.Printf("\n%s\n", task.Log)
	}
	return nil
}

func create(ctx context.Context, cli *console.Client, settingsUUID string) error {
	task, err := cli.CreateTask(ctx, settingsUUID)
	if err != nil {
		return err
	}
	fmt.Printf("scheduled %s from %s\n", task.UUID, task.Settings.Name)
	return nil
}

func remove(ctx context.Context, cli *console.Client, taskUUID string) error {
	fmt.Printf("delete task %s? [y/N] ", taskUUID)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
		fmt.Println("aborted")
		return nil
	}
	if err := cli.DeleteTask(ctx, taskUUID); err != nil {
		return err
	}
	fmt.Println("deletion requested")
	return nil
}

func listSettings(ctx context.Context, cli *console.Client, page int) error {
	payload, err := cli.ListSettings(ctx, page)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UUID\tNAME\tTIME LIMIT\tCREATED")
	for _, entry := range payload.Entry {
		fmt.Fprintf(tw, "%s\t%s\t%ds\t%s\n", entry.UUID, entry.Name, entry.TimeLimit, entry.CreateTime)
	}
	tw.Flush()
	fmt.Printf("%d settings, page %d of %d\n", payload.Count, page, payload.PageCount)
	return nil
}

func printTasks(payload *v1.TaskListPayload) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UUID\tSETTINGS\tUSER\tSTATUS\tCREATED")
	for _, entry := range payload.Entry {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			entry.UUID, entry.Settings.Name, entry.User, statusLabel(entry.Status), entry.CreateTime)
	}
	tw.Flush()
	fmt.Printf("%d tasks, %d pages\n", payload.Count, payload.PageCount)
}

func statusLabel(code int) string {
	if code < 0 || code > 255 {
		return ""
	}
	return vo.StatusByCode(uint8(code)).Label()
}
