package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/peerclass/peerclass/core/progress"
	"github.com/peerclass/peerclass/core/workspace"
)

func (cli *commandLine) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
}

// printTasks lists the acting user's tasks; an empty status prints all
// three buckets.
func (cli *commandLine) printTasks(ws *workspace.Workspace, status progress.Status) error {
	statuses := progress.Statuses
	if status != "" {
		statuses = []progress.Status{status}
	}

	w := cli.newTable()
	fmt.Fprintln(w, "TASK\tTITLE\tCOURSE\tSTATUS\tASSIGNED BY")
	for _, st := range statuses {
		for _, entry := range ws.StudentTasks(st) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				entry.Task.ID, entry.Task.Title, entry.Course.Title, entry.Status, entry.AssignerName)
		}
	}
	return w.Flush()
}

func (cli *commandLine) printReviews(ws *workspace.Workspace) error {
	w := cli.newTable()
	fmt.Fprintln(w, "COMPLETION\tTASK\tCOURSE\tSTUDENT")
	for _, entry := range ws.ReviewTasks() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			entry.CompletionID, entry.Task.Title, entry.Course.Title, entry.StudentName)
	}
	return w.Flush()
}

func (cli *commandLine) printProgress(ws *workspace.Workspace) error {
	w := cli.newTable()
	fmt.Fprintln(w, "COURSE\tDONE\tTOTAL")
	for _, entry := range ws.CourseProgress() {
		fmt.Fprintf(w, "%s\t%d\t%d\n", entry.Course.Title, entry.CompletedTasks, entry.TotalTasks)
	}
	return w.Flush()
}

func (cli *commandLine) printCourses(ws *workspace.Workspace, term string) error {
	courses := ws.Courses.List()
	if term != "" {
		courses = ws.Courses.Search(term)
	}

	w := cli.newTable()
	fmt.Fprintln(w, "COURSE\tTITLE\tDESCRIPTION")
	for _, crs := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\n", crs.ID, crs.Title, crs.Description.String)
	}
	return w.Flush()
}
