package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/reportgate/backend/internal/confidence"
	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/report"
	"github.com/reportgate/backend/internal/reviews"
	"github.com/reportgate/backend/internal/rules"
	"github.com/spf13/cobra"
)

// ErrNotApproved is returned in strict mode when a report would go to review.
var ErrNotApproved = errors.New("report not auto-approved")

type evaluateOptions struct {
	reportPath     string
	submissionPath string
	cataloguePath  string
	rulesPath      string
	threshold      int
	asJSON         bool
	strict         bool
}

func EvaluateCmd() *cobra.Command {
	var opts evaluateOptions
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a report against its submission and the service catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Generated report (JSON, optionally code-fenced)")
	cmd.Flags().StringVar(&opts.submissionPath, "submission", "", "Questionnaire submission (JSON)")
	cmd.Flags().StringVar(&opts.cataloguePath, "catalogue", "", "Service catalogue (JSON)")
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "Rule overrides (YAML)")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 90, "Minimum score to publish without review")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full assessment as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero unless the report would be published")
	cmd.MarkFlagRequired("report")
	cmd.MarkFlagRequired("submission")
	cmd.MarkFlagRequired("catalogue")
	return cmd
}

type evaluateOutput struct {
	confidence.Assessment
	Decision models.Decision `json:"decision"`
}

func runEvaluate(out io.Writer, opts evaluateOptions) error {
	set, err := loadRules(opts.rulesPath)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(opts.reportPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	doc, err := report.Decode(string(raw))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.submissionPath)
	if err != nil {
		return fmt.Errorf("read submission: %w", err)
	}
	sub, err := report.DecodeSubmission(data)
	if err != nil {
		return err
	}

	data, err = os.ReadFile(opts.cataloguePath)
	if err != nil {
		return fmt.Errorf("read catalogue: %w", err)
	}
	cat, err := report.DecodeCatalogue(data)
	if err != nil {
		return err
	}

	a := confidence.NewEngine(set).Assess(doc, sub, cat)
	decision := reviews.Route(a.Result, opts.threshold)

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(evaluateOutput{Assessment: a, Decision: decision}); err != nil {
			return err
		}
	} else {
		printAssessment(out, a, decision)
	}

	if opts.strict && decision != models.DecisionPublish {
		return ErrNotApproved
	}
	return nil
}

func printAssessment(out io.Writer, a confidence.Assessment, decision models.Decision) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen, color.Bold)

	verdict := yellow
	if decision == models.DecisionPublish {
		verdict = green
	}
	fmt.Fprintf(out, "Score: %d/100  auto-approve: %t  decision: ", a.Result.Score, a.Result.AutoApprove)
	verdict.Fprintln(out, decision)

	for _, c := range a.Checks {
		for _, e := range c.Result.Errors {
			red.Fprint(out, "ERROR ")
			fmt.Fprintf(out, "[%s] %s\n", c.Name, e)
		}
	}
	for _, d := range a.Deductions {
		yellow.Fprint(out, "WARN  ")
		fmt.Fprintf(out, "%s (-%d)\n", d.Flag, d.Points)
	}
	for _, b := range a.Bonuses {
		green.Fprint(out, "BONUS ")
		fmt.Fprintf(out, "%s (+%d)\n", b.Reason, b.Points)
	}
}

func loadRules(path string) (*rules.Set, error) {
	r, err := rules.Load(path)
	if err != nil {
		return nil, err
	}
	return r.Compile()
}
