// Package planner provides a Go client for the study planner HTTP API
// served by "planner serve".
//
// # Getting Started
//
// Start the server, then create a client:
//
//	client, err := planner.NewClient(
//	    planner.WithPort(7480),
//	    planner.WithTimezone("Europe/Paris"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Tasks
//
// Create a task:
//
//	task, err := client.CreateTask(ctx, "Read chapter 3",
//	    planner.WithDate("2024-03-01"),
//	    planner.WithTime("18:00"),
//	    planner.WithPriority(planner.PriorityHigh),
//	    planner.WithRemind(true),
//	)
//
// List tasks the way the list view shows them:
//
//	tasks, err := client.ListTasks(ctx,
//	    planner.WithStatus(planner.StatusTodo),
//	    planner.WithSearch("chapter"),
//	    planner.WithSort(planner.SortPriority),
//	)
//
// Edit only some fields; the others keep their current values:
//
//	task, err = client.UpdateTask(ctx, task.ID, planner.WithTitle("Read chapter 4"))
//
// Toggle done and delete:
//
//	task, err = client.ToggleTask(ctx, task.ID)
//	err = client.DeleteTask(ctx, task.ID)
//
// # Views
//
// The timeline holds the first eight dated tasks that are not done:
//
//	items, err := client.Timeline(ctx)
//	progress, err := client.Progress(ctx)
//
// # Backup
//
//	data, err := client.Export(ctx, planner.FormatJSON)
//	n, err := client.Import(ctx, data)
//
// # Error Handling
//
// API errors can be checked with helper functions:
//
//	task, err := client.GetTask(ctx, "t-123")
//	if planner.IsTaskNotFound(err) {
//	    // Handle not found
//	}
//	if planner.IsServerNotRunning(err) {
//	    // Start the server first
//	}
package planner
