package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PhucNguyen204/answerclass/internal/rules"
	"github.com/PhucNguyen204/answerclass/pkg/classifier"
)

func newStreamCmd(a *app) *cobra.Command {
	var (
		rulesPath string
		watch     bool
	)
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Classify answers read from stdin",
		Long: `Reads "SET_ID<TAB>answer" lines from stdin and prints
"outcome<TAB>answer" for each until EOF or interrupt.

With --watch the rules directory is watched and the classifier is swapped
whenever a rule file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("rules") {
				a.cfg.RulesPath = rulesPath
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Watch = watch
			}
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, cancel := context.WithCancel(parent)
			defer cancel()

			var current atomic.Pointer[classifier.Classifier]
			ready := make(chan struct{})
			var once sync.Once
			errc := make(chan error, 1)
			if a.cfg.Watch {
				go func() {
					errc <- rules.Watch(ctx, a.cfg.RulesPath, a.log, func(c *classifier.Classifier) {
						current.Store(c)
						a.log.Info("classifier swapped", zap.Int("sets", c.Len()))
						once.Do(func() { close(ready) })
					}, a.classifierOptions()...)
				}()
			} else {
				c, err := a.loadClassifier()
				if err != nil {
					return err
				}
				current.Store(c)
				close(ready)
			}

			select {
			case <-ready:
			case err := <-errc:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}

			lines := make(chan string)
			scanErr := make(chan error, 1)
			go func() {
				defer close(lines)
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					select {
					case lines <- sc.Text():
					case <-ctx.Done():
						return
					}
				}
				scanErr <- sc.Err()
			}()

			out := cmd.OutOrStdout()
			var writeErr error
		loop:
			for {
				select {
				case <-ctx.Done():
					break loop
				case line, ok := <-lines:
					if !ok {
						break loop
					}
					setID, answer, found := strings.Cut(line, "\t")
					if !found {
						a.log.Warn("expected SET_ID<TAB>answer", zap.String("line", line))
						continue
					}
					res, err := current.Load().Classify(setID, answer)
					if err != nil {
						res.Outcome = "error"
						answer = err.Error()
					}
					if _, writeErr = fmt.Fprintf(out, "%s\t%s\n", res.Outcome, answer); writeErr != nil {
						break loop
					}
				}
			}

			cancel()
			if a.cfg.Watch {
				if err := <-errc; err != nil {
					return err
				}
			}
			if writeErr != nil {
				return writeErr
			}
			select {
			case err := <-scanErr:
				return err
			default:
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&rulesPath, "rules", "", "rules directory (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload rules when files change (overrides config)")
	return cmd
}
