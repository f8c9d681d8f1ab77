package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	"github.com/kailas-cloud/productindex/internal/version"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Resolve the corpus (recreate or lookup)",
		Long: `Resolves the configured corpus. In recreate mode every corpus with the
configured name is deleted and a fresh one is created; in lookup mode the
single existing corpus with that name is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Corpus ready: %s (%s)\n", sess.CorpusKey, sess.Mode)
			return nil
		},
	}
}

func newSyncCmd(a *app) *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload the data directory into the corpus",
		Long: `Uploads every pdf, doc and docx file found at <data>/<manufacturer>/<product>/
with Manufacturer and Product metadata. The first failed upload stops the sync.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			root := dataDir
			if root == "" {
				root = deps.Config.Data.Root
			}

			report, err := deps.Sync.Sync(cmd.Context(), sess, root)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			cmd.Printf("Synced %d files (%d manufacturers, %d products) into %s\n",
				report.Files, report.Manufacturers, report.Products, sess.CorpusKey)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataDir, "data", "d", "", "data directory (default from config)")
	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		manufacturer string
		product      string
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Ask a question against the corpus",
		Long: `Runs a search with a generated summary. --manufacturer and --product
narrow the results to documents tagged with those values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			a.warnEmptyCorpus(cmd, deps, sess)

			ans, err := deps.Query.Query(cmd.Context(), sess, args[0], filter.Constraints{
				domain.AttrManufacturer: manufacturer,
				domain.AttrProduct:      product,
			})
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}

			if asJSON {
				data, err := json.MarshalIndent(ans, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal answer: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return renderAnswer(cmd.OutOrStdout(), ans)
		},
	}
	cmd.Flags().StringVarP(&manufacturer, "manufacturer", "m", "", "only documents from this manufacturer")
	cmd.Flags().StringVarP(&product, "product", "p", "", "only documents for this product")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the answer as JSON")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete every corpus with the configured name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := a.load()
			if err != nil {
				return err
			}
			name := deps.Config.Corpus.Name
			if err := deps.Corpus.DeleteByName(cmd.Context(), name); err != nil {
				return fmt.Errorf("delete corpus %q: %w", name, err)
			}
			cmd.Printf("Deleted corpora named %q\n", name)
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			a.warnEmptyCorpus(cmd, deps, sess)
			if deps.Serve == nil {
				return errors.New("http server not configured")
			}
			return deps.Serve(cmd.Context(), sess)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("productindex version %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
