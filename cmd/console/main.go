// Command console is a line-oriented front end for the platform API, useful
// for exercising the full flow (login, dashboards, learning paths, progress
// toggling, mentor chat) without the web UI.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/client"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/ui"
)

type app struct {
	store *ui.Store
	nav   *ui.Navigator

	refreshToken string

	// Per-page state, rebuilt on navigation.
	paths  []*models.LearningPath
	detail *ui.PathDetail
	viewer *ui.ContentViewer
	chat   *ui.MentorChat
}

func main() {
	godotenv.Load()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = client.DefaultBaseURL
	}

	api := client.New(baseURL)
	a := &app{
		store: ui.NewStore(api, ui.NewQueryCache()),
		nav:   ui.NewNavigator(),
	}

	fmt.Println("Learning Experience Platform console")
	fmt.Println("Type 'help' for commands.")
	a.render()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		a.dispatch(line)
		a.render()
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin error: %v", err)
	}
}

func (a *app) dispatch(line string) {
	ctx := context.Background()
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		printHelp()
	case "role":
		if len(args) != 1 || (args[0] != models.UserTypeStudent && args[0] != models.UserTypeEducator) {
			fmt.Println("usage: role <student|educator>")
			return
		}
		a.nav.SelectRole(args[0])
	case "login":
		a.login(ctx, args)
	case "logout":
		if a.refreshToken != "" {
			a.store.API().Logout(ctx, a.refreshToken)
			a.refreshToken = ""
		}
		a.nav.Logout()
		a.resetPageState()
	case "paths":
		a.listPaths(ctx)
	case "open":
		a.openPath(ctx, args)
	case "content":
		a.openContent(ctx, args)
	case "toggle":
		a.toggle(ctx)
	case "chat":
		a.chatSend(ctx, strings.TrimPrefix(line, "chat "))
	case "create":
		a.createPath(ctx)
	case "back":
		a.back()
	default:
		fmt.Printf("unknown command %q; type 'help'\n", cmd)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  role <student|educator>   choose a role and go to login
  login <email> <password>  authenticate as the chosen role
  logout                    end the session
  paths                     list learning paths (dashboard)
  open <n>                  open learning path n from the last listing
  content <n>               open content item n from the open path
  toggle                    toggle completion on the open content
  chat <message>            ask the AI mentor (student only)
  create                    create a learning path (educator only)
  back                      go back one level
  quit                      exit`)
}

func (a *app) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: login <email> <password>")
		return
	}
	role := a.nav.PendingRole()
	if role == "" {
		fmt.Println("select a role first: role <student|educator>")
		return
	}

	resp, err := a.store.API().Authenticate(ctx, args[0], args[1], role)
	if err != nil {
		fmt.Printf("login failed: %s\n", userMessage(err))
		return
	}
	if !a.nav.LoginSuccess(resp) {
		fmt.Println("login failed: account role does not match the selected role")
		return
	}
	a.refreshToken = resp.Tokens.RefreshToken
	fmt.Printf("welcome, %s %s\n", resp.FirstName, resp.LastName)
}

func (a *app) listPaths(ctx context.Context) {
	session := a.nav.Session()
	if session == nil {
		fmt.Println("not logged in")
		return
	}

	var studentID *uuid.UUID
	if session.UserType == models.UserTypeStudent {
		id := session.ProfileID
		studentID = &id
	}

	paths, err := a.store.LearningPaths(ctx, studentID)
	if err != nil {
		fmt.Printf("failed to load learning paths: %s\n", userMessage(err))
		return
	}
	a.paths = paths

	if len(paths) == 0 {
		fmt.Println("no learning paths")
		return
	}
	for i, p := range paths {
		fmt.Printf("  [%d] %s (%s) - %.0f%% complete\n", i+1, p.Title, p.SubjectName, p.CompletionPercentage)
	}
}

func (a *app) openPath(ctx context.Context, args []string) {
	idx, ok := pickIndex(args, len(a.paths))
	if !ok {
		fmt.Println("usage: open <n> (run 'paths' first)")
		return
	}
	path := a.paths[idx]

	if !a.nav.OpenLearningPath(path.ID) {
		fmt.Println("not logged in")
		return
	}

	session := a.nav.Session()
	var studentID *uuid.UUID
	if session.UserType == models.UserTypeStudent {
		id := session.ProfileID
		studentID = &id
	}

	detail, err := a.store.LoadPathDetail(ctx, path.ID, studentID)
	if err != nil {
		fmt.Printf("failed to load path: %s\n", userMessage(err))
		a.nav.BackToDashboard()
		return
	}
	a.detail = detail
}

func (a *app) openContent(ctx context.Context, args []string) {
	if a.detail == nil {
		fmt.Println("open a learning path first")
		return
	}
	idx, ok := pickIndex(args, len(a.detail.Progress))
	if !ok {
		fmt.Println("usage: content <n>")
		return
	}
	rec := a.detail.Progress[idx]

	progressID := rec.ID
	if !a.nav.OpenContent(rec.ContentID, rec.LearningPathID, &progressID) {
		fmt.Println("not logged in")
		return
	}

	viewer, err := a.store.LoadContentViewer(ctx, rec.ContentID, rec.LearningPathID, &progressID)
	if err != nil {
		fmt.Printf("failed to load content: %s\n", userMessage(err))
		a.nav.BackToLearningPath()
		return
	}
	a.viewer = viewer
}

func (a *app) toggle(ctx context.Context) {
	if a.viewer == nil || a.nav.Page() != ui.PageContentViewer {
		fmt.Println("open a content item first")
		return
	}
	if !a.viewer.CanToggle() {
		fmt.Println("no progress record for this content; toggle unavailable")
		return
	}
	if err := a.viewer.Toggle(ctx); err != nil {
		fmt.Printf("update failed: %s\n", userMessage(err))
		return
	}
	fmt.Printf("progress is now %s\n", a.viewer.Progress().Status)
}

func (a *app) chatSend(ctx context.Context, text string) {
	session := a.nav.Session()
	if session == nil || session.UserType != models.UserTypeStudent {
		fmt.Println("chat is available to logged-in students")
		return
	}

	if a.chat == nil {
		paths, err := a.store.LearningPaths(ctx, &session.ProfileID)
		if err != nil {
			paths = nil
		}
		a.chat = ui.NewMentorChat(a.store.API(), session.ProfileID, a.nav.SelectedPathID(), a.nav.SelectedContentID(), session.FirstName, paths)
		for _, m := range a.chat.Messages() {
			fmt.Printf("  [mentor] %s\n", m.Text)
		}
	}

	a.chat.Send(ctx, text)
	messages := a.chat.Messages()
	fmt.Printf("  [mentor] %s\n", messages[len(messages)-1].Text)
}

func (a *app) createPath(ctx context.Context) {
	session := a.nav.Session()
	if session == nil || session.UserType != models.UserTypeEducator {
		fmt.Println("only educators can create learning paths")
		return
	}

	reader := bufio.NewReader(os.Stdin)
	wizard := ui.NewPathWizard(a.store.API(), a.store.Cache())

	students, err := a.store.Students(ctx)
	if err != nil || len(students) == 0 {
		fmt.Println("no students available")
		return
	}
	subjects, err := a.store.Subjects(ctx)
	if err != nil || len(subjects) == 0 {
		fmt.Println("no subjects available")
		return
	}

	for i, s := range students {
		fmt.Printf("  [%d] %s\n", i+1, s.FullName())
	}
	student := students[promptIndex(reader, "student #: ", len(students))]
	for i, s := range subjects {
		fmt.Printf("  [%d] %s\n", i+1, s.Name)
	}
	subject := subjects[promptIndex(reader, "subject #: ", len(subjects))]

	details := ui.PathDetails{
		StudentID:       student.ID,
		SubjectID:       subject.ID,
		Title:           prompt(reader, "title: "),
		Description:     prompt(reader, "description: "),
		DifficultyLevel: prompt(reader, "difficulty (beginner/intermediate/advanced): "),
	}
	details.StartDate, _ = models.ParseDate(prompt(reader, "start date (YYYY-MM-DD): "))
	details.TargetCompletionDate, _ = models.ParseDate(prompt(reader, "target date (YYYY-MM-DD): "))

	if fieldErrors := wizard.SubmitDetails(details); len(fieldErrors) > 0 {
		for field, msg := range fieldErrors {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		return
	}

	items, err := a.store.ContentBySubject(ctx, subject.ID)
	if err != nil || len(items) == 0 {
		fmt.Println("no content for this subject")
		return
	}
	for i, c := range items {
		fmt.Printf("  [%d] %s (%s, %dmin)\n", i+1, c.Title, c.DifficultyLevel, c.EstimatedDurationMinutes)
	}
	for _, raw := range strings.Fields(prompt(reader, "content #s (space-separated): ")) {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(items) {
			wizard.ToggleContent(items[n-1].ID)
		}
	}

	if err := wizard.Submit(ctx); err != nil || wizard.Step() != ui.StepSuccess {
		fmt.Printf("create failed: %s\n", wizard.ErrorMessage())
		return
	}

	fmt.Printf("created %q with goals:\n", wizard.Created().Title)
	for _, goal := range wizard.Goals() {
		fmt.Printf("  - %s\n", goal)
	}
	wizard.Done()
}

func (a *app) back() {
	switch a.nav.Page() {
	case ui.PageContentViewer:
		a.viewer = nil
		a.nav.BackToLearningPath()
	case ui.PageLearningPathDetail:
		a.detail = nil
		a.nav.BackToDashboard()
	default:
		fmt.Println("nothing to go back to")
	}
}

func (a *app) resetPageState() {
	a.paths = nil
	a.detail = nil
	a.viewer = nil
	a.chat = nil
}

func (a *app) render() {
	page := a.nav.Page()
	if !a.nav.CanRender(page) {
		fmt.Println("-- landing --")
		return
	}

	switch page {
	case ui.PageLanding:
		fmt.Println("-- landing: choose a role with 'role <student|educator>' --")
	case ui.PageLogin:
		fmt.Printf("-- login as %s --\n", a.nav.PendingRole())
	case ui.PageStudentDashboard:
		fmt.Printf("-- student dashboard (%s) --\n", a.nav.Session().Email)
	case ui.PageEducatorDashboard:
		fmt.Printf("-- educator dashboard (%s) --\n", a.nav.Session().Email)
	case ui.PageLearningPathDetail:
		if a.detail != nil {
			fmt.Printf("-- %s: %d content item(s), %.0f%% complete --\n",
				a.detail.Path.Title, len(a.detail.Progress), a.detail.Path.CompletionPercentage)
			for i, rec := range a.detail.Progress {
				fmt.Printf("  [%d] %s - %s\n", i+1, rec.ContentTitle, rec.Status)
			}
		}
	case ui.PageContentViewer:
		if a.viewer != nil {
			fmt.Printf("-- %s --\n", a.viewer.Content().Title)
			if a.viewer.CanToggle() {
				fmt.Printf("  [%s]\n", a.viewer.ToggleLabel())
			}
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptIndex(reader *bufio.Reader, label string, max int) int {
	for {
		raw := prompt(reader, label)
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= max {
			return n - 1
		}
		fmt.Printf("enter a number between 1 and %d\n", max)
	}
}

func pickIndex(args []string, max int) (int, bool) {
	if len(args) != 1 || max == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n - 1, true
}

func userMessage(err error) string {
	if apiErr, ok := err.(*models.APIError); ok {
		return apiErr.Message
	}
	return "network error, try again"
}
