package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexitrack/lexitrack/internal/story"
)

const replHelp = `commands:
  add <term> ; <translation> ; <language> [; note]   capture a new word
  edit <id> <term> ; <translation> ; <language> [; note]
  list [language]                                    show the collection
  due                                                show items due for review
  review                                             quiz the next due item
  delete <id> [id ...]                               remove items
  translate <from> <to> <text>                       machine-translate text
  languages                                          list translation languages
  story <code> <name>                                today's reading story + quiz
  stories [code]                                     past stories and quiz scores
  stats                                              collection summary
  quit`

func (a *application) now() time.Time {
	return time.Now()
}

// repl runs the interactive command loop until the input closes or the
// context is cancelled.
func (a *application) repl(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(a.out, "lexitrack ready; type 'help' for commands")
	for {
		fmt.Fprint(a.out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return scanner.Err()
			}
			if done := a.dispatch(ctx, line, lines); done {
				return nil
			}
		}
	}
}

// dispatch handles one command line. Returns true when the loop should end.
func (a *application) dispatch(ctx context.Context, line string, lines <-chan string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	var err error
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, replHelp)
	case "add":
		err = a.cmdAdd(ctx, rest)
	case "edit":
		err = a.cmdEdit(ctx, rest)
	case "list":
		a.cmdList(rest)
	case "due":
		a.cmdDue()
	case "review":
		err = a.cmdReview(ctx, lines)
	case "delete":
		err = a.cmdDelete(ctx, fields[1:])
	case "translate":
		err = a.cmdTranslate(ctx, fields[1:])
	case "languages":
		err = a.cmdLanguages(ctx)
	case "story":
		err = a.cmdStory(ctx, fields[1:], lines)
	case "stories":
		err = a.cmdStories(ctx, rest)
	case "stats":
		err = a.cmdStats(ctx)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(a.out, "unknown command %q; type 'help'\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
	return false
}

// splitParts splits "a ; b ; c" argument lists.
func splitParts(s string) []string {
	raw := strings.Split(s, ";")
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func (a *application) cmdAdd(ctx context.Context, rest string) error {
	parts := splitParts(rest)
	if len(parts) < 3 {
		return errors.New("usage: add <term> ; <translation> ; <language> [; note]")
	}
	note := ""
	if len(parts) > 3 {
		note = parts[3]
	}

	item, err := a.items.AddItem(ctx, parts[0], parts[1], parts[2], note)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s (%s) [%s]\n", item.Term, item.Translation, item.ID)
	return nil
}

func (a *application) cmdEdit(ctx context.Context, rest string) error {
	fields := strings.SplitN(rest, " ", 2)
	if len(fields) < 2 {
		return errors.New("usage: edit <id> <term> ; <translation> ; <language> [; note]")
	}
	id, err := uuid.Parse(fields[0])
	if err != nil {
		return fmt.Errorf("bad item ID: %w", err)
	}
	parts := splitParts(fields[1])
	if len(parts) < 3 {
		return errors.New("usage: edit <id> <term> ; <translation> ; <language> [; note]")
	}
	note := ""
	if len(parts) > 3 {
		note = parts[3]
	}
	return a.items.EditItem(ctx, id, parts[0], parts[1], parts[2], note)
}

func (a *application) cmdList(language string) {
	items := a.repo.ItemsForLanguage(language)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "no items")
		return
	}
	for _, item := range items {
		marker := " "
		if item.IsMastered {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s L%d %-20s %-20s %s  %s\n",
			marker, item.MasteryLevel, item.Term, item.Translation, item.Language, item.ID)
	}
}

func (a *application) cmdDue() {
	due := a.repo.ItemsDue(a.now())
	if len(due) == 0 {
		fmt.Fprintln(a.out, "nothing due")
		return
	}
	for _, item := range due {
		fmt.Fprintf(a.out, "L%d %-20s %s  %s\n", item.MasteryLevel, item.Term, item.Language, item.ID)
	}
}

func (a *application) cmdReview(ctx context.Context, lines <-chan string) error {
	due := a.repo.ItemsDue(a.now())
	if len(due) == 0 {
		fmt.Fprintln(a.out, "nothing due")
		return nil
	}
	item := due[0]

	fmt.Fprintf(a.out, "translate: %s\n? ", item.Term)
	var answer string
	select {
	case <-ctx.Done():
		return nil
	case line, ok := <-lines:
		if !ok {
			return nil
		}
		answer = line
	}

	result, err := a.items.SubmitAnswer(ctx, item.ID, answer)
	if err != nil {
		return err
	}
	if result.Correct {
		fmt.Fprintf(a.out, "correct! now level %d\n", result.Item.MasteryLevel)
	} else {
		fmt.Fprintf(a.out, "incorrect; it means %q (back to level %d)\n",
			item.Translation, result.Item.MasteryLevel)
	}
	return nil
}

func (a *application) cmdDelete(ctx context.Context, args []string) error {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("bad item ID %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	if err := a.items.DeleteItems(ctx, ids); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %d item(s)\n", len(ids))
	return nil
}

func (a *application) cmdTranslate(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: translate <from> <to> <text>")
	}
	from, to := args[0], args[1]
	if from == "auto" {
		from = ""
	}
	text := strings.Join(args[2:], " ")

	translated, err := a.translator.Translate(ctx, text, from, to)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, translated)
	return nil
}

func (a *application) cmdLanguages(ctx context.Context) error {
	langs, err := a.translator.Languages(ctx)
	if err != nil {
		return err
	}
	for _, lang := range langs {
		fmt.Fprintf(a.out, "%-10s %s (%s)\n", lang.Code, lang.Name, lang.NativeName)
	}
	return nil
}

func (a *application) cmdStory(ctx context.Context, args []string, lines <-chan string) error {
	if len(args) < 2 {
		return errors.New("usage: story <code> <name>, e.g. story de German")
	}
	code, name := args[0], strings.Join(args[1:], " ")

	s, cached, err := a.stories.DailyStory(ctx, code, name)
	if err != nil {
		return err
	}
	if cached {
		fmt.Fprintln(a.out, "(today's story, generated earlier)")
	}

	fmt.Fprintf(a.out, "\n%s\n\n%s\n\n", s.Title, s.Content)
	if s.QuizCompleted {
		fmt.Fprintf(a.out, "quiz already completed: %d/%d\n", s.QuizScore, len(s.Questions))
		return nil
	}
	return a.runStoryQuiz(ctx, s, lines)
}

// runStoryQuiz asks each comprehension question and grades the answers.
func (a *application) runStoryQuiz(ctx context.Context, s *story.DailyStory, lines <-chan string) error {
	answers := make([]int, 0, len(s.Questions))
	for i, q := range s.Questions {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(a.out, "   %c) %s\n", 'a'+j, opt)
		}
		fmt.Fprint(a.out, "? ")

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			choice := strings.TrimSpace(strings.ToLower(line))
			if len(choice) != 1 || choice[0] < 'a' || int(choice[0]-'a') >= len(q.Options) {
				fmt.Fprintln(a.out, "skipping quiz; answer with a single option letter next time")
				return nil
			}
			answers = append(answers, int(choice[0]-'a'))
		}
	}

	score, err := a.stories.CompleteQuiz(ctx, s.ID, answers)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "score: %d/%d\n", score, len(s.Questions))
	return nil
}

func (a *application) cmdStories(ctx context.Context, rest string) error {
	stories, err := a.stories.History(ctx, strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	if len(stories) == 0 {
		fmt.Fprintln(a.out, "no stories yet")
		return nil
	}
	for _, s := range stories {
		quiz := "quiz open"
		if s.QuizCompleted {
			quiz = fmt.Sprintf("quiz %d/%d", s.QuizScore, len(s.Questions))
		}
		fmt.Fprintf(a.out, "%s  %-6s %-30s %s\n",
			s.CreatedAt.Local().Format("2006-01-02"), s.Language, s.Title, quiz)
	}
	return nil
}

func (a *application) cmdStats(ctx context.Context) error {
	stats, err := a.items.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "items: %d  mastered: %d  due: %d  streak: %d day(s)\n",
		stats.TotalItems, stats.MasteredItems, stats.DueItems, stats.CurrentStreak)

	for _, day := range a.history.RecentHistory(7, a.now()) {
		mark := "."
		if a.history.HasStudied(day) {
			mark = "#"
		}
		fmt.Fprintf(a.out, "%s %s  ", day.Format("Mon"), mark)
	}
	fmt.Fprintln(a.out)
	return nil
}
