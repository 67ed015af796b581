package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PhucNguyen204/answerclass/internal/rules"
	"github.com/PhucNguyen204/answerclass/pkg/classifier"
)

func newClassifyCmd(a *app) *cobra.Command {
	var (
		rulesPath   string
		inputFile   string
		workers     int
		noPrefilter bool
	)
	cmd := &cobra.Command{
		Use:   "classify SET_ID [INPUT...]",
		Short: "Classify answers against a rule set",
		Long: `Loads every rule set under the rules directory and classifies the given
answers against SET_ID. Prints one "outcome<TAB>answer" line per answer.

Example:
  answerclass classify capital-of-france Paris Pari London
  answerclass classify capital-of-france --file answers.txt --workers 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("rules") {
				a.cfg.RulesPath = rulesPath
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Workers = workers
			}
			if noPrefilter {
				a.cfg.Prefilter = false
			}

			inputs := append([]string(nil), args[1:]...)
			if inputFile != "" {
				lines, err := readLines(inputFile)
				if err != nil {
					return err
				}
				inputs = append(inputs, lines...)
			}
			if len(inputs) == 0 {
				return errors.New("no answers given (pass them as arguments or with --file)")
			}

			c, err := a.loadClassifier()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			results, err := c.ClassifyBatch(ctx, args[0], inputs, a.cfg.Workers)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, r := range results {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", r.Outcome, inputs[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rulesPath, "rules", "", "rules directory (overrides config)")
	cmd.Flags().StringVar(&inputFile, "file", "", "read answers from a file, one per line")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (overrides config)")
	cmd.Flags().BoolVar(&noPrefilter, "no-prefilter", false, "disable the contains prefilter")
	return cmd
}

func (a *app) classifierOptions() []classifier.Option {
	return []classifier.Option{
		classifier.WithLogger(a.log),
		classifier.WithPrefilter(a.cfg.Prefilter),
	}
}

func (a *app) loadClassifier() (*classifier.Classifier, error) {
	sets, _, _, err := rules.LoadDir(a.cfg.RulesPath, a.log)
	if err != nil {
		return nil, err
	}
	c, err := classifier.Compile(sets, a.classifierOptions()...)
	if err != nil {
		return nil, err
	}
	a.log.Debug("classifier ready", zap.Strings("sets", c.SetIDs()))
	return c, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}
