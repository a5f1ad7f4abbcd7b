package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/interviu/internal/interview"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No, continue later"
)

var errExit = errors.New("exit requested")

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run an interactive mock interview",
	Run: func(cmd *cobra.Command, _ []string) {
		practice(cmd)
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)

	practiceCmd.Flags().String("resume", "", "continue the interview with the given session id")
}

func practice(cmd *cobra.Command) {
	ctx := context.Background()

	a := newApplication(ctx)
	defer a.close()
	a.requireOwner()

	out := cmd.OutOrStdout()
	resume, _ := cmd.Flags().GetString("resume")

	id, step, err := openSession(ctx, a, out, strings.TrimSpace(resume))
	if err != nil {
		a.logger.Fatal("opening interview", zap.Error(err))
	}

	a.logger.Info("interview session", zap.String("session_id", id))

	err = runInterview(ctx, a, out, id, step)
	switch {
	case err == nil:
	case errors.Is(err, errExit), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		fmt.Fprintf(out, "\nProgress saved. Continue with: %s practice --resume %s\n", app, id)
	default:
		a.logger.Fatal("running interview", zap.Error(err), zap.String("session_id", id))
	}
}

// openSession starts a new setup conversation or reloads an existing session.
func openSession(ctx context.Context, a *application, out io.Writer, resume string) (string, interview.Step, error) {
	if resume == "" {
		begun, err := a.service.BeginSetup(ctx, a.owner)
		if err != nil {
			return "", "", err
		}
		fmt.Fprintln(out, begun.Prompt)
		return begun.SessionID, begun.Step, nil
	}

	sess, err := a.service.Get(ctx, a.owner, resume)
	if err != nil {
		return "", "", fmt.Errorf("loading session %s: %w", resume, err)
	}
	step := sess.SetupStep()
	if step != interview.StepReady && !sess.Started() {
		fmt.Fprintln(out, interview.SetupPrompt(step))
	}
	return sess.ID, step, nil
}

func runInterview(ctx context.Context, a *application, out io.Writer, id string, step interview.Step) error {
	sess, err := a.service.Get(ctx, a.owner, id)
	if err != nil {
		return err
	}

	if sess.Finalized() {
		printReport(out, sess.Report)
		return nil
	}

	if !sess.Started() {
		for step != interview.StepReady {
			utterance, err := ask("You", nil)
			if err != nil {
				return err
			}
			reply, err := a.service.ProcessSetupStep(ctx, a.owner, id, string(step), utterance)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply.Prompt)
			step = reply.Step
		}

		msg, err := a.service.ConfirmSetup(ctx, a.owner, id)
		if err != nil {
			return err
		}
		confirm := promptui.Select{Label: msg, Items: []string{PromptYes, PromptNo}}
		_, choice, err := confirm.Run()
		if err != nil {
			return err
		}
		if choice != PromptYes {
			return errExit
		}
	}

	question, err := a.service.StartInterview(ctx, a.owner, id)
	if err != nil {
		return err
	}

	for {
		fmt.Fprintf(out, "\nInterviewer: %s\n", question)
		answer, err := ask("Answer", validateAnswer)
		if err != nil {
			return err
		}

		result, err := a.service.SubmitAnswer(ctx, a.owner, id, answer)
		if err != nil {
			return err
		}
		if result.Feedback != "" {
			fmt.Fprintf(out, "Feedback: %s\n", result.Feedback)
		}
		if result.Done() {
			printReport(out, result.Report)
			return nil
		}
		question = result.NextQuestion
	}
}

func ask(label string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{Label: label, Validate: validate}
	return p.Run()
}

func validateAnswer(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("answer must not be empty")
	}
	return nil
}

func printReport(out io.Writer, r *interview.Report) {
	if r == nil {
		return
	}
	fmt.Fprintf(out, "\nOverall score: %d/10\n", r.OverallScore)
	printList(out, "Strengths", r.Strengths)
	printList(out, "Weaknesses", r.Weaknesses)
	printList(out, "Suggestions", r.ImprovementSuggestions)
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
